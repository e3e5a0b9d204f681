package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const defaultGenerationCount = 5

// QuizItem 生成的选择题条目，correctAnswer 为选项下标
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
}

// FlashcardItem 生成的卡片条目
type FlashcardItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AIContentService 把课时文本变成结构化测验/卡片：
// 拼提示词 → 调服务商 → 抽取 JSON 数组 → 严格校验 → 落库
type AIContentService struct {
	AI           *AIService
	ContentRepo  *repository.AIContentRepository
	SubjectRepo  *repository.SubjectRepository
	LessonRepo   *repository.LessonRepository
	MaterialRepo *repository.MaterialRepository
}

func NewAIContentService(
	ai *AIService,
	contentRepo *repository.AIContentRepository,
	subjectRepo *repository.SubjectRepository,
	lessonRepo *repository.LessonRepository,
	materialRepo *repository.MaterialRepository,
) *AIContentService {
	return &AIContentService{
		AI:           ai,
		ContentRepo:  contentRepo,
		SubjectRepo:  subjectRepo,
		LessonRepo:   lessonRepo,
		MaterialRepo: materialRepo,
	}
}

// Generate 为课时生成一批内容并保存。lessonContent 为空时
// 取该课时全部文本材料拼接。整批校验，任一条目不合法则全部丢弃
func (s *AIContentService) Generate(ctx context.Context, subjectID, lessonID uint, typ model.AIContentType, count int, lessonContent string) (*model.AIGeneratedContent, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown content type %q", util.ErrGeneratedContentInvalid, typ)
	}
	if count <= 0 {
		count = defaultGenerationCount
	}

	subject, err := s.SubjectRepo.FindByID(subjectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.SubjectID != subject.ID {
		return nil, util.ErrLessonNotFound
	}

	if strings.TrimSpace(lessonContent) == "" {
		lessonContent, err = s.collectLessonText(lessonID)
		if err != nil {
			return nil, err
		}
	}

	prompt := buildPrompt(subject.Name, lesson.Title, lessonContent, typ, count)

	raw, err := s.AI.GenerateText(ctx, prompt)
	if err != nil {
		monitoring.AIGenerationCounter.WithLabelValues(string(typ), "provider_error").Inc()
		return nil, err
	}

	normalized, err := ParseAndValidate(raw, typ)
	if err != nil {
		monitoring.AIGenerationCounter.WithLabelValues(string(typ), "validation_error").Inc()
		return nil, err
	}

	record := &model.AIGeneratedContent{
		SubjectID: subjectID,
		LessonID:  lessonID,
		Type:      typ,
		Content:   normalized,
	}
	if err := s.ContentRepo.Create(record); err != nil {
		return nil, err
	}

	monitoring.AIGenerationCounter.WithLabelValues(string(typ), "success").Inc()
	return record, nil
}

// HistoryForLesson 课时维度的生成历史，新的在前
func (s *AIContentService) HistoryForLesson(lessonID uint) ([]model.AIGeneratedContent, error) {
	return s.ContentRepo.FindByLesson(lessonID)
}

// HistoryForSubject 学科维度的生成历史，新的在前
func (s *AIContentService) HistoryForSubject(subjectID uint) ([]model.AIGeneratedContent, error) {
	return s.ContentRepo.FindBySubject(subjectID)
}

func (s *AIContentService) collectLessonText(lessonID uint) (string, error) {
	materials, err := s.MaterialRepo.FindByLesson(lessonID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, m := range materials {
		if m.Type != model.MaterialText {
			continue
		}
		b.WriteString(m.Title)
		b.WriteString("\n")
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// ParseAndValidate 从服务商原始输出中抽取 JSON 数组并整批校验，
// 返回重新序列化后的规范文本
func ParseAndValidate(raw string, typ model.AIContentType) (string, error) {
	data, err := extractJSONArray(raw)
	if err != nil {
		return "", err
	}

	switch typ {
	case model.AIContentQuiz:
		var items []QuizItem
		if err := json.Unmarshal(data, &items); err != nil {
			return "", fmt.Errorf("%w: %v", util.ErrGeneratedContentInvalid, err)
		}
		if err := validateQuizItems(items); err != nil {
			return "", err
		}
		normalized, err := json.Marshal(items)
		if err != nil {
			return "", err
		}
		return string(normalized), nil
	case model.AIContentFlashcards:
		var items []FlashcardItem
		if err := json.Unmarshal(data, &items); err != nil {
			return "", fmt.Errorf("%w: %v", util.ErrGeneratedContentInvalid, err)
		}
		if err := validateFlashcardItems(items); err != nil {
			return "", err
		}
		normalized, err := json.Marshal(items)
		if err != nil {
			return "", err
		}
		return string(normalized), nil
	}

	return "", fmt.Errorf("%w: unknown content type %q", util.ErrGeneratedContentInvalid, typ)
}

// extractJSONArray 服务商可能把 JSON 包在说明文字里，
// 取第一个 '[' 到最后一个 ']' 之间的片段
func extractJSONArray(raw string) ([]byte, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array found in response", util.ErrGeneratedContentInvalid)
	}
	return []byte(raw[start : end+1]), nil
}

func validateQuizItems(items []QuizItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: empty item list", util.ErrGeneratedContentInvalid)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("%w: item %d: missing or invalid question", util.ErrGeneratedContentInvalid, i)
		}
		if len(item.Options) < 2 {
			return fmt.Errorf("%w: item %d: options must contain at least 2 entries", util.ErrGeneratedContentInvalid, i)
		}
		if item.CorrectAnswer == nil {
			return fmt.Errorf("%w: item %d: missing correctAnswer", util.ErrGeneratedContentInvalid, i)
		}
		if *item.CorrectAnswer < 0 || *item.CorrectAnswer >= len(item.Options) {
			return fmt.Errorf("%w: item %d: correctAnswer must be a valid index into options", util.ErrGeneratedContentInvalid, i)
		}
	}
	return nil
}

func validateFlashcardItems(items []FlashcardItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: empty item list", util.ErrGeneratedContentInvalid)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("%w: item %d: missing or invalid question", util.ErrGeneratedContentInvalid, i)
		}
		if strings.TrimSpace(item.Answer) == "" {
			return fmt.Errorf("%w: item %d: missing or invalid answer", util.ErrGeneratedContentInvalid, i)
		}
	}
	return nil
}

func buildPrompt(subjectName, lessonTitle, lessonContent string, typ model.AIContentType, count int) string {
	base := fmt.Sprintf(`You are an expert teacher in %s. Your task is to generate educational content for the lesson "%s" based on the provided content.
IMPORTANT: You must respond with ONLY a valid JSON array. Do not include any additional text, explanations, or formatting.

Subject: %s
Lesson: %s
Lesson content:
%s

Number of items to generate: %d
`, subjectName, lessonTitle, subjectName, lessonTitle, lessonContent, count)

	if typ == model.AIContentQuiz {
		return base + fmt.Sprintf(`
Generate multiple-choice questions in this exact JSON format:
[
  {
    "question": "What is the capital of France?",
    "options": ["Paris", "London", "Berlin", "Madrid"],
    "correctAnswer": 0
  }
]

Requirements:
- Generate exactly %d questions
- Each question must have exactly 4 options
- correctAnswer must be a valid index (0-3) pointing to the correct option
- Make questions clear and unambiguous
- Include one definitively correct answer
- Make incorrect options plausible but clearly wrong
- Vary the difficulty level
- Focus on key concepts from the lesson`, count)
	}

	return base + fmt.Sprintf(`
Generate flashcards in this exact JSON format:
[
  {
    "question": "What is the capital of France?",
    "answer": "Paris"
  }
]

Requirements:
- Generate exactly %d flashcards
- Each flashcard must have both a question and answer
- Keep questions specific and clear
- Keep answers concise
- Include a mix of definitions, concepts, and applications
- Use clear, student-friendly language`, count)
}
