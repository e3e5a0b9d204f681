package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const subjectsByGradeTTL = 10 * time.Minute

// CurriculumService 学科与课时的读写。课程结构只增不改：
// 发布后没有更新和删除路径
type CurriculumService struct {
	SubjectRepo *repository.SubjectRepository
	LessonRepo  *repository.LessonRepository
	Redis       *redis.Client // 可为 nil（如测试环境），此时跳过缓存
}

func NewCurriculumService(subjectRepo *repository.SubjectRepository, lessonRepo *repository.LessonRepository, rdb *redis.Client) *CurriculumService {
	return &CurriculumService{
		SubjectRepo: subjectRepo,
		LessonRepo:  lessonRepo,
		Redis:       rdb,
	}
}

// SubjectsForGrade 学生侧列表：年级集合包含 grade 的学科。
// 结果短时缓存，创建学科时失效
func (s *CurriculumService) SubjectsForGrade(ctx context.Context, grade int) ([]model.Subject, error) {
	cacheKey := fmt.Sprintf("subjects:grade:%d", grade)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []model.Subject
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	subjects, err := s.SubjectRepo.FindByGrade(grade)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(subjects); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, subjectsByGradeTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache subjects by grade", zap.Error(err))
			}
		}
	}

	return subjects, nil
}

// SubjectsForTeacher 教师侧列表：该教师名下学科
func (s *CurriculumService) SubjectsForTeacher(teacherID uint) ([]model.Subject, error) {
	return s.SubjectRepo.FindByTeacher(teacherID)
}

// CreateSubject 创建学科并返回落库实体，年级集合不可为空
func (s *CurriculumService) CreateSubject(ctx context.Context, name string, grades []int, teacherID uint) (*model.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.ErrTitleRequired
	}
	if len(grades) == 0 {
		return nil, util.ErrGradesRequired
	}

	subject := &model.Subject{
		Name:      name,
		TeacherID: teacherID,
	}
	seen := make(map[int]bool, len(grades))
	for _, g := range grades {
		if seen[g] {
			continue
		}
		seen[g] = true
		subject.Grades = append(subject.Grades, model.SubjectGrade{Grade: g})
	}

	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}

	// 新学科会改变各年级的学生可见列表
	if s.Redis != nil {
		for g := range seen {
			s.Redis.Del(ctx, fmt.Sprintf("subjects:grade:%d", g))
		}
	}

	return subject, nil
}

// LessonsForSubject 按创建顺序返回课时
func (s *CurriculumService) LessonsForSubject(subjectID uint) ([]model.Lesson, error) {
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return s.LessonRepo.FindBySubject(subjectID)
}

// CreateLesson 在教师自己的学科下新建课时，返回落库实体
func (s *CurriculumService) CreateLesson(title string, subjectID, teacherID uint) (*model.Lesson, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, util.ErrTitleRequired
	}

	subject, err := s.SubjectRepo.FindByID(subjectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	if subject.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	lesson := &model.Lesson{
		SubjectID: subjectID,
		Title:     title,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
