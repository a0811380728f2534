package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegister(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register("alice", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Fatalf("role = %s, want USER", user.Role)
	}
	if user.Hearts != svc.Cfg.Game.MaxHearts {
		t.Fatalf("hearts = %d, want full %d", user.Hearts, svc.Cfg.Game.MaxHearts)
	}
	if user.Password == "secret123" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestRegisterDuplicateLogin(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("alice", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register("alice", "other456"); !errors.Is(err, util.ErrLoginTaken) {
		t.Fatalf("err = %v, want ErrLoginTaken", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.Register("alice", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login("alice", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.RoleUser {
		t.Fatalf("claims = %+v, want userID %d role USER", claims, user.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.Register("alice", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login("alice", "wrong"); err == nil {
		t.Fatalf("expected login failure on wrong password")
	}
	if _, _, err := svc.Login("ghost", "secret123"); err == nil {
		t.Fatalf("expected login failure on unknown login")
	}
}

func TestLoginBlockedUserStillAuthenticates(t *testing.T) {
	svc := newAuthService(t)
	user, err := svc.Register("alice", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.UserRepo.SetBlocked(user.ID, true); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}

	// 封禁不挡登录，客户端根据 blocked 标志处理
	_, loggedIn, err := svc.Login("alice", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !loggedIn.Blocked {
		t.Fatalf("expected blocked flag on returned user")
	}
}
