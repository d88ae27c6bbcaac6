package faq

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ashwinyue/faq-bot/internal/config"
	"github.com/ashwinyue/faq-bot/internal/repository"
)

// Outcome 解析结果分类
type Outcome int

const (
	// OutcomeFound 命中
	OutcomeFound Outcome = iota
	// OutcomeTriggerNotFound 触发词未命中
	OutcomeTriggerNotFound
	// OutcomeAnswerMissing 命中条目但没有答案
	OutcomeAnswerMissing
)

// Resolution 一次FAQ解析的结果
type Resolution struct {
	Outcome  Outcome
	Question string
	Answer   string
}

// Option 选择控件中的一项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AnswerSource FAQ读取后端
type AnswerSource interface {
	// Resolve 在频道可见集合内解析触发文本
	Resolve(ctx context.Context, channelID, trigger string) (*Resolution, error)
	// Options 列出频道可见的FAQ选项
	Options(ctx context.Context, channelID string) ([]Option, error)
}

// DatabaseSource 数据库后端：已发布FAQ集合
type DatabaseSource struct {
	repo        *repository.Repositories
	resolveMode string
}

// NewDatabaseSource 创建数据库后端
func NewDatabaseSource(repo *repository.Repositories, resolveMode string) *DatabaseSource {
	return &DatabaseSource{repo: repo, resolveMode: resolveMode}
}

// Resolve 在频道可见集合内解析触发文本
//
// trigger 模式按问题文本精确匹配，select 模式把触发文本当作已选FAQ的ID。
func (s *DatabaseSource) Resolve(ctx context.Context, channelID, trigger string) (*Resolution, error) {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return &Resolution{Outcome: OutcomeTriggerNotFound}, nil
	}

	if s.resolveMode == config.ResolveModeSelect {
		id, err := strconv.ParseUint(trigger, 10, 32)
		if err != nil {
			return &Resolution{Outcome: OutcomeTriggerNotFound}, nil
		}
		published, err := s.repo.FAQ.GetVisibleByID(channelID, uint(id))
		if err != nil {
			if repository.IsNotFound(err) {
				return &Resolution{Outcome: OutcomeTriggerNotFound}, nil
			}
			return nil, fmt.Errorf("failed to load FAQ %d: %w", id, err)
		}
		return resolutionFor(published.Question, published.Answer), nil
	}

	published, err := s.repo.FAQ.FindVisibleByQuestion(channelID, trigger)
	if err != nil {
		if repository.IsNotFound(err) {
			return &Resolution{Outcome: OutcomeTriggerNotFound}, nil
		}
		return nil, fmt.Errorf("failed to match trigger: %w", err)
	}
	return resolutionFor(published.Question, published.Answer), nil
}

// Options 列出频道可见的已发布FAQ
func (s *DatabaseSource) Options(ctx context.Context, channelID string) ([]Option, error) {
	faqs, err := s.repo.FAQ.ListVisible(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list FAQs for channel %s: %w", channelID, err)
	}
	options := make([]Option, 0, len(faqs))
	for _, f := range faqs {
		options = append(options, Option{
			Value: strconv.FormatUint(uint64(f.ID), 10),
			Label: TruncateLabel(f.Question),
		})
	}
	return options, nil
}

func resolutionFor(question, answer string) *Resolution {
	if strings.TrimSpace(answer) == "" {
		return &Resolution{Outcome: OutcomeAnswerMissing, Question: question}
	}
	return &Resolution{Outcome: OutcomeFound, Question: question, Answer: answer}
}

// 选择控件的标签长度限制
const (
	labelMaxLen  = 75
	labelKeepLen = 72
)

// TruncateLabel 截断选项标签：超过75个字符时保留前72个并追加省略号
func TruncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= labelMaxLen {
		return s
	}
	return string(runes[:labelKeepLen]) + "..."
}
