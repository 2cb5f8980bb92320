package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrEmailTaken        = errors.New("邮箱已被占用")
	ErrUserClassNotFound = errors.New("班级不存在")
	ErrClassOnlyStudent  = errors.New("仅学生可归属班级")
)

// UserService 用户业务接口（管理员操作）
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error) {
	if req.ClassID != nil {
		if req.Role != model.RoleStudent {
			return nil, ErrClassOnlyStudent
		}
		if _, err := s.repo.Class.GetByID(ctx, *req.ClassID); err != nil {
			if pkgerrors.IsNotFound(err) {
				return nil, ErrUserClassNotFound
			}
			return nil, pkgerrors.AsStoreUnavailable(err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		ClassID:      req.ClassID,
	}
	user.CreatedBy = &callerID
	user.UpdatedBy = &callerID

	if err := s.repo.User.Create(ctx, user); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx, req.Role, req.ClassID)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.ClassID != nil {
		if user.Role != model.RoleStudent {
			return nil, ErrClassOnlyStudent
		}
		if _, err := s.repo.Class.GetByID(ctx, *req.ClassID); err != nil {
			if pkgerrors.IsNotFound(err) {
				return nil, ErrUserClassNotFound
			}
			return nil, pkgerrors.AsStoreUnavailable(err)
		}
		user.ClassID = req.ClassID
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return pkgerrors.AsStoreUnavailable(err)
	}
	if err := s.repo.User.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.AsStoreUnavailable(err)
	}
	return nil
}

// toUserResponse 将用户模型映射为响应
func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		ClassID:   user.ClassID,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
	if user.Class != nil {
		resp.Class = &dto.ClassBrief{ID: user.Class.ClassID, Name: user.Class.Name}
	}
	return resp
}
