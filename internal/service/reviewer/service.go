package reviewer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ashwinyue/faq-bot/internal/repository"
)

// 审核人管理错误分类
var (
	// ErrForbidden 非管理员尝试管理审核人
	ErrForbidden = errors.New("forbidden")
	// ErrValidation 输入不合法
	ErrValidation = errors.New("validation failed")
)

// IsForbidden 判断是否为权限错误
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// Service 审核人管理
type Service struct {
	repo        *repository.Repositories
	adminUserID string
}

// NewService 创建审核人服务
func NewService(repo *repository.Repositories, adminUserID string) *Service {
	return &Service{repo: repo, adminUserID: adminUserID}
}

// EnsureAdmin 启动时播种管理员
func (s *Service) EnsureAdmin(ctx context.Context) error {
	if err := s.repo.Reviewer.EnsureAdmin(s.adminUserID); err != nil {
		return fmt.Errorf("failed to seed admin reviewer: %w", err)
	}
	return nil
}

// Register 注册新审核人，仅管理员可调用；重复注册幂等
func (s *Service) Register(ctx context.Context, requesterID, targetUserID string) error {
	if requesterID != s.adminUserID {
		return fmt.Errorf("%w: only the admin can add reviewers", ErrForbidden)
	}
	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		return fmt.Errorf("%w: a target user is required", ErrValidation)
	}
	if err := s.repo.Reviewer.Register(targetUserID); err != nil {
		return fmt.Errorf("failed to register reviewer %s: %w", targetUserID, err)
	}
	return nil
}
