package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TinaTech-Developers/school-management-system/config"
	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
	"github.com/TinaTech-Developers/school-management-system/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T) (AuthService, *mockUserRepo) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret-at-least-16-chars"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 168 * time.Hour

	userRepo := newMockUserRepo()
	repo := &repository.Repository{
		User:          userRepo,
		Class:         newMockClassRepo(),
		Subject:       newMockSubjectRepo(),
		Room:          newMockRoomRepo(),
		TimetableSlot: newMockSlotRepo(),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	if err := userRepo.Create(context.Background(), &model.User{
		UserID:       "user-001",
		Name:         "管理员",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}); err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop()), userRepo
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("应返回 token 对")
	}
	if resp.User == nil || resp.User.Role != model.RoleAdmin {
		t.Error("应返回用户信息")
	}
	if resp.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn 不符: %d", resp.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知邮箱同样期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	resp, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("刷新应返回新的 access token")
	}

	// access token 不能用于刷新
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("用 access token 刷新期望 ErrRefreshInvalid，实际: %v", err)
	}

	// 非法字符串
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "user-001", &dto.ChangePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "new-password-123",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}

	if err := svc.ChangePassword(ctx, "user-001", &dto.ChangePasswordRequest{
		OldPassword: "correct-password",
		NewPassword: "new-password-123",
	}); err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码可登录
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "new-password-123",
	}); err != nil {
		t.Errorf("改密后登录应成功: %v", err)
	}
	// 旧密码失效
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码应失效，实际: %v", err)
	}
}

// ── Me 测试 ──

func TestAuthService_Me(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	resp, err := svc.Me(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if resp.Email != "admin@example.com" {
		t.Errorf("期望邮箱 admin@example.com，实际=%s", resp.Email)
	}

	if _, err := svc.Me(context.Background(), "user-missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
