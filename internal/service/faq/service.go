package faq

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ashwinyue/faq-bot/internal/model"
	"github.com/ashwinyue/faq-bot/internal/repository"
)

// Notifier 审核消息投递方
type Notifier interface {
	// NotifyPending 向审核频道发布新提交的FAQ，返回消息位置
	NotifyPending(ctx context.Context, f *model.PendingFAQ, channelIDs []string) (channelID, timestamp string, err error)
	// NotifyDecision 将原审核消息更新为裁决记录
	NotifyDecision(ctx context.Context, channelID, timestamp string, d Decision) error
}

// Decision 审核裁决
type Decision struct {
	Approved   bool
	FAQ        *model.PendingFAQ
	ReviewerID string
	Reason     string
}

// Service FAQ审核工作流
type Service struct {
	repo     *repository.Repositories
	source   AnswerSource
	notifier Notifier
}

// NewService 创建FAQ服务
func NewService(repo *repository.Repositories, source AnswerSource, notifier Notifier) *Service {
	return &Service{repo: repo, source: source, notifier: notifier}
}

// SubmitRequest 提交FAQ请求
type SubmitRequest struct {
	SubmitterID string
	IsGlobal    bool
	Question    string
	Answer      string
	ChannelIDs  []string
}

// DecisionResult 审核操作结果
type DecisionResult struct {
	// FAQID 裁决产生的已发布/已驳回条目ID
	FAQID uint
	// AlreadyDecided 待审核条目已不存在，本次调用按幂等空操作处理
	AlreadyDecided bool
}

// Submit 提交FAQ进入待审核状态并通知审核频道
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*model.PendingFAQ, error) {
	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	if question == "" || answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", ErrValidation)
	}
	if !req.IsGlobal && len(req.ChannelIDs) == 0 {
		return nil, fmt.Errorf("%w: a non-global FAQ needs at least one channel", ErrValidation)
	}

	channelIDs := req.ChannelIDs
	if req.IsGlobal {
		// 全局FAQ不保留绑定
		channelIDs = nil
	}

	pending := &model.PendingFAQ{
		Question:  question,
		Answer:    answer,
		IsGlobal:  req.IsGlobal,
		CreatedBy: req.SubmitterID,
	}
	if err := s.repo.FAQ.CreatePending(pending, channelIDs); err != nil {
		return nil, fmt.Errorf("failed to create pending FAQ: %w", err)
	}

	reviewChannel, reviewTS, err := s.notifier.NotifyPending(ctx, pending, channelIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to notify review channel: %w", err)
	}
	if err := s.repo.FAQ.SetReviewMessage(pending.ID, reviewChannel, reviewTS); err != nil {
		return nil, fmt.Errorf("failed to record review message: %w", err)
	}
	pending.ReviewChannelID = reviewChannel
	pending.ReviewMessageTS = reviewTS

	return pending, nil
}

// Approve 批准待审核FAQ
//
// 待审核条目已不存在时（重复投递、并发裁决）按幂等空操作返回，不视为错误。
func (s *Service) Approve(ctx context.Context, pendingID uint, reviewerID string) (*DecisionResult, error) {
	if err := s.requireReviewer(reviewerID); err != nil {
		return nil, err
	}

	pending, err := s.repo.FAQ.GetPendingByID(pendingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return &DecisionResult{AlreadyDecided: true}, nil
		}
		return nil, fmt.Errorf("failed to load pending FAQ %d: %w", pendingID, err)
	}

	published, err := s.repo.FAQ.Approve(pendingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return &DecisionResult{AlreadyDecided: true}, nil
		}
		return nil, fmt.Errorf("failed to approve FAQ %d: %w", pendingID, err)
	}

	s.notifyDecision(ctx, pending, Decision{
		Approved:   true,
		FAQ:        pending,
		ReviewerID: reviewerID,
	})

	return &DecisionResult{FAQID: published.ID}, nil
}

// Reject 驳回待审核FAQ并记录原因
func (s *Service) Reject(ctx context.Context, pendingID uint, reviewerID, reason string) (*DecisionResult, error) {
	if err := s.requireReviewer(reviewerID); err != nil {
		return nil, err
	}

	pending, err := s.repo.FAQ.GetPendingByID(pendingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return &DecisionResult{AlreadyDecided: true}, nil
		}
		return nil, fmt.Errorf("failed to load pending FAQ %d: %w", pendingID, err)
	}

	rejected, err := s.repo.FAQ.Reject(pendingID, reviewerID, reason)
	if err != nil {
		if repository.IsNotFound(err) {
			return &DecisionResult{AlreadyDecided: true}, nil
		}
		return nil, fmt.Errorf("failed to reject FAQ %d: %w", pendingID, err)
	}

	s.notifyDecision(ctx, pending, Decision{
		Approved:   false,
		FAQ:        pending,
		ReviewerID: reviewerID,
		Reason:     reason,
	})

	return &DecisionResult{FAQID: rejected.ID}, nil
}

// Resolve 在频道可见集合内解析触发文本
func (s *Service) Resolve(ctx context.Context, channelID, trigger string) (*Resolution, error) {
	return s.source.Resolve(ctx, channelID, trigger)
}

// ListOptions 列出频道可见的FAQ选项
func (s *Service) ListOptions(ctx context.Context, channelID string) ([]Option, error) {
	return s.source.Options(ctx, channelID)
}

func (s *Service) requireReviewer(userID string) error {
	ok, err := s.repo.Reviewer.IsReviewer(userID)
	if err != nil {
		return fmt.Errorf("failed to check reviewer %s: %w", userID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s is not a reviewer", ErrForbidden, userID)
	}
	return nil
}

// notifyDecision 更新原审核消息。迁移已提交，投递失败只记录日志。
func (s *Service) notifyDecision(ctx context.Context, pending *model.PendingFAQ, d Decision) {
	if pending.ReviewChannelID == "" || pending.ReviewMessageTS == "" {
		return
	}
	if err := s.notifier.NotifyDecision(ctx, pending.ReviewChannelID, pending.ReviewMessageTS, d); err != nil {
		log.Printf("failed to update review message for FAQ %d: %v", pending.ID, err)
	}
}
