package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/logger"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LessonContentService 课时下的材料、测验、题目与作答
type LessonContentService struct {
	MaterialRepo *repository.MaterialRepository
	QuizRepo     *repository.QuizRepository
	LessonRepo   *repository.LessonRepository
	ProgressRepo *repository.ProgressRepository
	Storage      *StorageService
	DB           *gorm.DB
}

func NewLessonContentService(
	materialRepo *repository.MaterialRepository,
	quizRepo *repository.QuizRepository,
	lessonRepo *repository.LessonRepository,
	progressRepo *repository.ProgressRepository,
	storage *StorageService,
	db *gorm.DB,
) *LessonContentService {
	return &LessonContentService{
		MaterialRepo: materialRepo,
		QuizRepo:     quizRepo,
		LessonRepo:   lessonRepo,
		ProgressRepo: progressRepo,
		Storage:      storage,
		DB:           db,
	}
}

func (s *LessonContentService) lessonExists(lessonID uint) error {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrLessonNotFound
		}
		return err
	}
	return nil
}

func (s *LessonContentService) MaterialsForLesson(lessonID uint) ([]model.Material, error) {
	return s.MaterialRepo.FindByLesson(lessonID)
}

// CreateMaterial 追加到课时末尾：order_index 取当前材料数
func (s *LessonContentService) CreateMaterial(lessonID uint, title, content string, typ model.MaterialType) (*model.Material, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.ErrTitleRequired
	}
	if !typ.Valid() {
		return nil, util.ErrInvalidMaterialType
	}
	if err := s.lessonExists(lessonID); err != nil {
		return nil, err
	}

	count, err := s.MaterialRepo.CountByLesson(lessonID)
	if err != nil {
		return nil, err
	}

	material := &model.Material{
		LessonID:   lessonID,
		Title:      title,
		Content:    content,
		Type:       typ,
		OrderIndex: int(count),
	}
	if err := s.MaterialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

// allowedMimeTypes 按材料类型限定允许的文件内容，嗅探结果须命中其一
func allowedMimeTypes(typ model.MaterialType) []string {
	switch typ {
	case model.MaterialVideo:
		return []string{"video/"}
	case model.MaterialDocument:
		return []string{
			"application/pdf",
			"text/plain",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/zip",
		}
	}
	return []string{"text/"}
}

// AttachMaterialFile 上传文档/视频附件。先落临时文件并深度校验
// MIME 类型（不信任客户端声明的 Content-Type），视频用 ffmpeg
// 探测时长，再交给存储层。重复上传会替换并清理旧对象
func (s *LessonContentService) AttachMaterialFile(ctx context.Context, materialID uint, filename string, reader io.Reader, size int64, contentType string) (*model.Material, error) {
	material, err := s.MaterialRepo.FindByID(materialID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}

	tmp, err := os.CreateTemp("", "material-*"+filepath.Ext(filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	// 深度验证 MIME 类型
	src, err := os.Open(tmp.Name())
	if err != nil {
		return nil, err
	}
	mimeType, err := util.ValidateMimeType(src, allowedMimeTypes(material.Type))
	src.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", util.ErrInvalidFileContent, mimeType)
	}

	if material.Type == model.MaterialVideo && util.IsVideo(mimeType) {
		if info, err := util.ProbeVideo(tmp.Name()); err == nil {
			material.DurationSeconds = info.Duration
		}
	}

	objectName := fmt.Sprintf("materials/%d/%d-%s", material.LessonID, time.Now().UnixNano(), filepath.Base(filename))
	url, err := s.Storage.Provider.UploadFile(ctx, objectName, tmp.Name(), mimeType)
	if err != nil {
		return nil, err
	}

	// 替换上传时清理旧对象，失败只记日志
	if material.FileObject != "" && material.FileObject != objectName {
		if err := s.Storage.Provider.Delete(ctx, material.FileObject); err != nil {
			logger.Log.Warn("failed to delete replaced material file",
				zap.String("object", material.FileObject), zap.Error(err))
		}
	}

	material.FileURL = url
	material.FileObject = objectName
	if err := s.MaterialRepo.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *LessonContentService) QuizzesForLesson(lessonID uint) ([]model.Quiz, error) {
	return s.QuizRepo.FindByLesson(lessonID)
}

func (s *LessonContentService) CreateQuiz(lessonID uint, title, description string) (*model.Quiz, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.ErrTitleRequired
	}
	if err := s.lessonExists(lessonID); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		LessonID:    lessonID,
		Title:       title,
		Description: description,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *LessonContentService) QuestionsForQuiz(quizID uint) ([]model.QuizQuestion, error) {
	return s.QuizRepo.FindQuestionsByQuiz(quizID)
}

// CreateQuestion 追加到测验末尾，正确答案必须是选项之一
func (s *LessonContentService) CreateQuestion(quizID uint, question string, options []string, correctAnswer string) (*model.QuizQuestion, error) {
	if strings.TrimSpace(question) == "" {
		return nil, util.ErrTitleRequired
	}

	found := false
	for _, opt := range options {
		if opt == correctAnswer {
			found = true
			break
		}
	}
	if !found {
		return nil, util.ErrAnswerNotInOptions
	}

	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	count, err := s.QuizRepo.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}

	q := &model.QuizQuestion{
		QuizID:        quizID,
		Question:      question,
		Options:       options,
		CorrectAnswer: correctAnswer,
		OrderIndex:    int(count),
	}
	if err := s.QuizRepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// SubmitAttempt 记录一次作答并把所属课时标记为已完成。
// 两个写入在同一事务内，要么都生效要么都不生效
func (s *LessonContentService) SubmitAttempt(quizID, userID uint, score int) (*model.QuizAttempt, error) {
	if score < 0 {
		return nil, util.ErrNegativeScore
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:      quizID,
		UserID:      userID,
		Score:       score,
		CompletedAt: time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		return s.ProgressRepo.UpsertTx(tx, quiz.LessonID, userID, model.ProgressCompleted)
	})
	if err != nil {
		return nil, err
	}

	return attempt, nil
}

// AttemptsForUser 学生在某测验上的历史作答，新的在前
func (s *LessonContentService) AttemptsForUser(quizID, userID uint) ([]model.QuizAttempt, error) {
	return s.QuizRepo.FindAttempts(quizID, userID)
}
