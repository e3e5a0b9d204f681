// 手动触发 AI 内容生成脚本
//
// 该功能已集成到主应用的教师接口中（POST /api/teacher/ai-content）。
// 此脚本仅用于手动触发，例如批量为已有课时补生成测验或闪卡。
//
// 用法: go run scripts/generate_content.go -subject 1 -lesson 3 -type quiz -count 5

package main

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/service"
	"edulearn_backend/pkg/database"
	"edulearn_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	subjectID := flag.Uint("subject", 0, "学科ID")
	lessonID := flag.Uint("lesson", 0, "课时ID")
	contentType := flag.String("type", "quiz", "生成类型: quiz 或 flashcards")
	count := flag.Int("count", 5, "生成条数")
	flag.Parse()

	if *subjectID == 0 || *lessonID == 0 {
		log.Fatal("必须指定 -subject 和 -lesson")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	aiService := service.NewAIService(cfg.AI)
	contentService := service.NewAIContentService(
		aiService,
		repository.NewAIContentRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewLessonRepository(db),
		repository.NewMaterialRepository(db),
	)

	record, err := contentService.Generate(
		context.Background(),
		*subjectID,
		*lessonID,
		model.AIContentType(*contentType),
		*count,
		"",
	)
	if err != nil {
		log.Fatalf("生成失败: %v", err)
	}

	log.Printf("生成完成: id=%s type=%s", record.ID, record.Type)
}
