package service

import (
	"bytes"
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/util"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// AIService Gemini generateContent 接口的 HTTP 客户端
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: http.DefaultClient,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateText 单轮生成调用，返回服务商输出的原始文本。
// 密钥缺失立即失败，不重试
func (s *AIService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.config.APIKey == "" {
		return "", util.ErrAIKeyMissing
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.config.BaseURL, s.config.Model, s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrAIProviderFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", util.ErrAIProviderFailure, resp.StatusCode, string(body))
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrAIProviderFailure, err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("%w: %s", util.ErrAIProviderFailure, result.Error.Message)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", util.ErrAIProviderFailure)
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}
