package util

import "errors"

var (
	ErrUsernameTaken      = errors.New("该用户名已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrSubjectNotFound  = errors.New("subject not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrMaterialNotFound = errors.New("material not found")
	ErrQuizNotFound     = errors.New("quiz not found")

	ErrGradesRequired       = errors.New("subject must cover at least one grade")
	ErrTitleRequired        = errors.New("title must not be empty")
	ErrInvalidMaterialType  = errors.New("invalid material type")
	ErrInvalidFileContent   = errors.New("非法的文件内容")
	ErrAnswerNotInOptions   = errors.New("correct answer must be one of the options")
	ErrNegativeScore        = errors.New("score must not be negative")
	ErrInvalidProgressState = errors.New("invalid progress status")

	// AI 生成失败分类：配置缺失 / 服务商调用失败 / 返回内容不合法
	ErrAIKeyMissing            = errors.New("AI api key is not configured")
	ErrAIProviderFailure       = errors.New("AI provider request failed")
	ErrGeneratedContentInvalid = errors.New("generated content failed validation")
)
