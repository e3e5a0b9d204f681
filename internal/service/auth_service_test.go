package service

import (
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-at-least-32-characters"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Username: "alice",
		Password: "supersecret",
		FullName: "Alice Zhang",
		Age:      10,
		Role:     model.Student,
	}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Password == "supersecret" {
		t.Error("password stored in plaintext")
	}

	token, got, err := svc.Login("alice", "supersecret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("logged in user ID = %d, want %d", got.ID, user.ID)
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student {
		t.Errorf("claims = %+v, want user %d with role student", claims, user.ID)
	}
}

func TestAuthService_DuplicateUsername(t *testing.T) {
	svc := newAuthService(t)

	first := &model.User{Username: "alice", Password: "supersecret", FullName: "Alice", Age: 10, Role: model.Student}
	if err := svc.Register(first); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	second := &model.User{Username: "alice", Password: "othersecret", FullName: "Other Alice", Age: 30, Role: model.Teacher}
	if err := svc.Register(second); !errors.Is(err, util.ErrUsernameTaken) {
		t.Errorf("Register(duplicate) error = %v, want ErrUsernameTaken", err)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Username: "alice", Password: "supersecret", FullName: "Alice", Age: 10, Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, _, err := svc.Login("alice", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("nobody", "supersecret"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_LoginStorageFailureNotCredentials(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Username: "alice", Password: "supersecret", FullName: "Alice", Age: 10, Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// 断开底层连接，查询失败不能伪装成凭据错误
	sqlDB, err := svc.UserRepo.DB.DB()
	if err != nil {
		t.Fatalf("DB() error = %v", err)
	}
	sqlDB.Close()

	_, _, err = svc.Login("alice", "supersecret")
	if err == nil {
		t.Fatal("Login() succeeded on a closed database")
	}
	if errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("storage failure reported as ErrInvalidCredentials: %v", err)
	}
}
