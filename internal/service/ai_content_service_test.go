package service

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseAndValidate_Quiz(t *testing.T) {
	valid := `[{"question":"2+2?","options":["3","4","5","6"],"correctAnswer":1}]`

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"clean array", valid, false},
		{"prose wrapped", "Here are your questions:\n" + valid + "\nEnjoy!", false},
		{"markdown fenced", "```json\n" + valid + "\n```", false},
		{"no array", "Sorry, I cannot help with that.", true},
		{"empty array", `[]`, true},
		{"missing question", `[{"options":["a","b"],"correctAnswer":0}]`, true},
		{"single option", `[{"question":"q","options":["a"],"correctAnswer":0}]`, true},
		{"missing correctAnswer", `[{"question":"q","options":["a","b"]}]`, true},
		{"answer out of range", `[{"question":"q","options":["a","b","c","d"],"correctAnswer":4}]`, true},
		{"negative answer", `[{"question":"q","options":["a","b"],"correctAnswer":-1}]`, true},
		{"one bad item rejects batch", valid[:len(valid)-1] + `,{"question":"q","options":["a","b"]}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndValidate(tt.raw, model.AIContentQuiz)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAndValidate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, util.ErrGeneratedContentInvalid) {
				t.Errorf("error %v does not wrap ErrGeneratedContentInvalid", err)
			}
		})
	}
}

func TestParseAndValidate_QuizNormalizes(t *testing.T) {
	raw := "Sure! Here you go:\n[{\"question\":\"2+2?\",\"options\":[\"3\",\"4\"],\"correctAnswer\":1}]\nLet me know if you need more."

	normalized, err := ParseAndValidate(raw, model.AIContentQuiz)
	if err != nil {
		t.Fatalf("ParseAndValidate() error = %v", err)
	}

	var items []QuizItem
	if err := json.Unmarshal([]byte(normalized), &items); err != nil {
		t.Fatalf("normalized output is not valid JSON: %v", err)
	}
	if len(items) != 1 || items[0].Question != "2+2?" || *items[0].CorrectAnswer != 1 {
		t.Errorf("normalized items = %+v", items)
	}
}

func TestParseAndValidate_Flashcards(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `[{"question":"Capital of France?","answer":"Paris"}]`, false},
		{"empty answer", `[{"question":"Capital of France?","answer":""}]`, true},
		{"blank answer", `[{"question":"Capital of France?","answer":"  "}]`, true},
		{"missing question", `[{"answer":"Paris"}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndValidate(tt.raw, model.AIContentFlashcards)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAndValidate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func newAIContentService(t *testing.T, handler http.HandlerFunc) (*AIContentService, *model.Subject, *model.Lesson, func()) {
	t.Helper()
	db := newTestDB(t)
	subject, lesson := seedSubjectWithLesson(t, db, []int{3})

	server := httptest.NewServer(handler)
	ai := NewAIService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "gemini-pro"})

	svc := NewAIContentService(
		ai,
		repository.NewAIContentRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewLessonRepository(db),
		repository.NewMaterialRepository(db),
	)
	return svc, subject, lesson, server.Close
}

func TestAIContentService_Generate(t *testing.T) {
	reply := `Here are the questions:
[{"question":"What is 1/2 + 1/2?","options":["1","2","1/4","0"],"correctAnswer":0}]`

	svc, subject, lesson, done := newAIContentService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiReply(reply))
	})
	defer done()

	record, err := svc.Generate(context.Background(), subject.ID, lesson.ID, model.AIContentQuiz, 1, "Fractions add up.")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if record.ID == "" {
		t.Error("record has no ID")
	}
	if record.Type != model.AIContentQuiz {
		t.Errorf("type = %q, want %q", record.Type, model.AIContentQuiz)
	}

	var items []QuizItem
	if err := json.Unmarshal([]byte(record.Content), &items); err != nil {
		t.Fatalf("stored content is not valid JSON: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	history, err := svc.HistoryForLesson(lesson.ID)
	if err != nil {
		t.Fatalf("HistoryForLesson() error = %v", err)
	}
	if len(history) != 1 || history[0].ID != record.ID {
		t.Fatalf("history = %+v, want the generated record", history)
	}
}

func TestAIContentService_GenerateRejectsInvalidOutput(t *testing.T) {
	svc, subject, lesson, done := newAIContentService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiReply(`[{"question":"q","options":["a","b"]}]`))
	})
	defer done()

	_, err := svc.Generate(context.Background(), subject.ID, lesson.ID, model.AIContentQuiz, 1, "content")
	if !errors.Is(err, util.ErrGeneratedContentInvalid) {
		t.Fatalf("Generate() error = %v, want ErrGeneratedContentInvalid", err)
	}

	// 整批被拒时不留历史
	history, err := svc.HistoryForLesson(lesson.ID)
	if err != nil {
		t.Fatalf("HistoryForLesson() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %+v, want empty", history)
	}
}

func TestAIContentService_GenerateProviderDown(t *testing.T) {
	svc, subject, lesson, done := newAIContentService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer done()

	_, err := svc.Generate(context.Background(), subject.ID, lesson.ID, model.AIContentQuiz, 1, "content")
	if !errors.Is(err, util.ErrAIProviderFailure) {
		t.Errorf("Generate() error = %v, want ErrAIProviderFailure", err)
	}
}

func TestAIContentService_GenerateUnknownIDs(t *testing.T) {
	svc, subject, lesson, done := newAIContentService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider should not be called")
	})
	defer done()

	ctx := context.Background()
	if _, err := svc.Generate(ctx, 9999, lesson.ID, model.AIContentQuiz, 1, "x"); !errors.Is(err, util.ErrSubjectNotFound) {
		t.Errorf("unknown subject error = %v, want ErrSubjectNotFound", err)
	}
	if _, err := svc.Generate(ctx, subject.ID, 9999, model.AIContentQuiz, 1, "x"); !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("unknown lesson error = %v, want ErrLessonNotFound", err)
	}
}
