package slack

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	slackapi "github.com/slack-go/slack"

	"github.com/ashwinyue/faq-bot/internal/model"
	"github.com/ashwinyue/faq-bot/internal/service/faq"
)

// Messenger 出站Slack投递
type Messenger struct {
	client          *slackapi.Client
	reviewChannelID string
}

// NewMessenger 创建投递器
func NewMessenger(client *slackapi.Client, reviewChannelID string) *Messenger {
	return &Messenger{client: client, reviewChannelID: reviewChannelID}
}

var _ faq.Notifier = (*Messenger)(nil)

// NotifyPending 向审核频道发布新提交的FAQ及批准/驳回按钮
func (m *Messenger) NotifyPending(ctx context.Context, f *model.PendingFAQ, channelIDs []string) (string, string, error) {
	value := strconv.FormatUint(uint64(f.ID), 10)
	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(
			slackapi.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*New FAQ submitted by <@%s>*\n*Q:* %s\n*A:* %s", f.CreatedBy, f.Question, f.Answer),
				false, false),
			nil, nil,
		),
		slackapi.NewContextBlock("",
			slackapi.NewTextBlockObject("mrkdwn", scopeLine(f.IsGlobal, channelIDs), false, false),
		),
		slackapi.NewActionBlock("",
			slackapi.NewButtonBlockElement(ActionApproveFAQ, value,
				slackapi.NewTextBlockObject("plain_text", "Approve", false, false)).
				WithStyle(slackapi.StylePrimary),
			slackapi.NewButtonBlockElement(ActionRejectFAQ, value,
				slackapi.NewTextBlockObject("plain_text", "Reject", false, false)).
				WithStyle(slackapi.StyleDanger),
		),
	}

	channelID, timestamp, err := m.client.PostMessageContext(ctx, m.reviewChannelID,
		slackapi.MsgOptionBlocks(blocks...),
		slackapi.MsgOptionText(fmt.Sprintf("New FAQ submitted: %s", f.Question), false),
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to post review message: %w", err)
	}
	return channelID, timestamp, nil
}

// NotifyDecision 将原审核消息更新为裁决记录（移除按钮）
func (m *Messenger) NotifyDecision(ctx context.Context, channelID, timestamp string, d faq.Decision) error {
	var decision string
	if d.Approved {
		decision = fmt.Sprintf(":white_check_mark: approved by <@%s>", d.ReviewerID)
	} else {
		decision = fmt.Sprintf(":no_entry: rejected by <@%s>", d.ReviewerID)
		if strings.TrimSpace(d.Reason) != "" {
			decision += fmt.Sprintf("\n*Reason:* %s", d.Reason)
		}
	}

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(
			slackapi.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*FAQ submitted by <@%s>*\n*Q:* %s\n*A:* %s", d.FAQ.CreatedBy, d.FAQ.Question, d.FAQ.Answer),
				false, false),
			nil, nil,
		),
		slackapi.NewSectionBlock(
			slackapi.NewTextBlockObject("mrkdwn", decision, false, false),
			nil, nil,
		),
	}

	_, _, _, err := m.client.UpdateMessageContext(ctx, channelID, timestamp,
		slackapi.MsgOptionBlocks(blocks...),
		slackapi.MsgOptionText(decision, false),
	)
	if err != nil {
		return fmt.Errorf("failed to update review message: %w", err)
	}
	return nil
}

// PostEphemeral 向用户发送仅自己可见的消息
func (m *Messenger) PostEphemeral(ctx context.Context, channelID, userID, text string) error {
	_, err := m.client.PostEphemeralContext(ctx, channelID, userID,
		slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post ephemeral message: %w", err)
	}
	return nil
}

// PostMessage 向频道发送消息
func (m *Messenger) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := m.client.PostMessageContext(ctx, channelID,
		slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}

// OpenView 打开模态表单
func (m *Messenger) OpenView(ctx context.Context, triggerID string, view slackapi.ModalViewRequest) error {
	if _, err := m.client.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("failed to open view: %w", err)
	}
	return nil
}

// AddReaction 为消息添加表情回应
func (m *Messenger) AddReaction(ctx context.Context, channelID, timestamp, name string) error {
	if err := m.client.AddReactionContext(ctx, name, slackapi.NewRefToMessage(channelID, timestamp)); err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	return nil
}

func scopeLine(isGlobal bool, channelIDs []string) string {
	if isGlobal {
		return "Scope: global (every channel)"
	}
	mentions := make([]string, 0, len(channelIDs))
	for _, id := range channelIDs {
		mentions = append(mentions, fmt.Sprintf("<#%s>", id))
	}
	return "Scope: " + strings.Join(mentions, ", ")
}
