package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/ashwinyue/faq-bot/internal/config"
	"github.com/ashwinyue/faq-bot/internal/service"
	"github.com/ashwinyue/faq-bot/internal/service/faq"
	"github.com/ashwinyue/faq-bot/internal/service/reviewer"
	botslack "github.com/ashwinyue/faq-bot/internal/slack"
)

// 提及机器人时添加的表情
const mentionReaction = "hyper-dino-wave"

const genericFailureText = "Something went wrong. Please try again later."

// SlackHandler Slack webhook处理器
type SlackHandler struct {
	cfg       *config.Config
	svc       *service.Services
	messenger *botslack.Messenger
}

// NewSlackHandler 创建Slack处理器
func NewSlackHandler(cfg *config.Config, svc *service.Services, messenger *botslack.Messenger) *SlackHandler {
	return &SlackHandler{cfg: cfg, svc: svc, messenger: messenger}
}

// Index 首页问候
func (h *SlackHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello, this is the FAQ Bot! Check it out in Slack.")
}

// Command 处理斜杠命令
func (h *SlackHandler) Command(c *gin.Context) {
	cmd, err := slackapi.SlashCommandParse(c.Request)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if !h.trustedApp(cmd.APIAppID) {
		log.Printf("dropping slash command from unexpected app %q", cmd.APIAppID)
		ok(c)
		return
	}

	ctx := c.Request.Context()

	switch cmd.Command {
	case "/faq":
		h.handleAsk(ctx, c, cmd)
	case "/faq-submit":
		h.handleSubmitCommand(ctx, c, cmd)
	case "/faq-reviewer":
		h.handleReviewerCommand(ctx, c, cmd)
	default:
		ephemeral(c, fmt.Sprintf("Unknown command %s", cmd.Command))
	}
}

func (h *SlackHandler) handleAsk(ctx context.Context, c *gin.Context, cmd slackapi.SlashCommand) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		if h.cfg.FAQ.ResolveMode == config.ResolveModeSelect {
			if err := h.messenger.OpenView(ctx, cmd.TriggerID, botslack.BuildAskModal(cmd.ChannelID)); err != nil {
				log.Printf("failed to open ask modal: %v", err)
				ephemeral(c, genericFailureText)
				return
			}
			ok(c)
			return
		}
		ephemeral(c, "Usage: /faq <question>")
		return
	}

	res, err := h.svc.FAQ.Resolve(ctx, cmd.ChannelID, text)
	if err != nil {
		log.Printf("failed to resolve %q in %s: %v", text, cmd.ChannelID, err)
		ephemeral(c, genericFailureText)
		return
	}
	h.respondResolution(c, res)
}

func (h *SlackHandler) respondResolution(c *gin.Context, res *faq.Resolution) {
	switch res.Outcome {
	case faq.OutcomeFound:
		inChannel(c, fmt.Sprintf("*Q:* %s\n*A:* %s", res.Question, res.Answer))
	case faq.OutcomeAnswerMissing:
		ephemeral(c, fmt.Sprintf("There is an FAQ entry for *%s* but no answer yet.%s", res.Question, h.fallbackHint()))
	default:
		ephemeral(c, "I don't know that one yet."+h.fallbackHint())
	}
}

func (h *SlackHandler) fallbackHint() string {
	if h.cfg.FAQ.FallbackContact == "" {
		return ""
	}
	return fmt.Sprintf(" Try asking <@%s>.", h.cfg.FAQ.FallbackContact)
}

func (h *SlackHandler) handleSubmitCommand(ctx context.Context, c *gin.Context, cmd slackapi.SlashCommand) {
	if h.cfg.FAQ.Backend != config.BackendDatabase {
		ephemeral(c, "FAQ submissions are not available here.")
		return
	}
	if err := h.messenger.OpenView(ctx, cmd.TriggerID, botslack.BuildSubmitModal()); err != nil {
		log.Printf("failed to open submit modal: %v", err)
		ephemeral(c, genericFailureText)
		return
	}
	ok(c)
}

func (h *SlackHandler) handleReviewerCommand(ctx context.Context, c *gin.Context, cmd slackapi.SlashCommand) {
	if h.cfg.FAQ.Backend != config.BackendDatabase {
		ephemeral(c, "Reviewer management is not available here.")
		return
	}
	target := parseUserMention(cmd.Text)
	err := h.svc.Reviewer.Register(ctx, cmd.UserID, target)
	switch {
	case err == nil:
		ephemeral(c, fmt.Sprintf("<@%s> can now review FAQs.", target))
	case reviewer.IsForbidden(err):
		ephemeral(c, "Only the admin can add reviewers.")
	case strings.TrimSpace(target) == "":
		ephemeral(c, "Usage: /faq-reviewer @user")
	default:
		log.Printf("failed to register reviewer: %v", err)
		ephemeral(c, genericFailureText)
	}
}

// Interactions 处理交互组件回调
func (h *SlackHandler) Interactions(c *gin.Context) {
	payload := c.PostForm("payload")
	var callback slackapi.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if !h.trustedApp(callback.APIAppID) {
		// 非本应用的载荷静默丢弃，成功形响应避免重投
		log.Printf("dropping interaction from unexpected app %q", callback.APIAppID)
		ok(c)
		return
	}

	ctx := c.Request.Context()

	switch callback.Type {
	case slackapi.InteractionTypeBlockSuggestion:
		h.handleOptions(ctx, c, &callback)
	case slackapi.InteractionTypeBlockActions:
		h.handleBlockAction(ctx, c, &callback)
	case slackapi.InteractionTypeViewSubmission:
		h.handleViewSubmission(ctx, c, &callback)
	default:
		ok(c)
	}
}

// handleOptions 外部选择器的选项加载，频道ID来自表单的私有元数据
func (h *SlackHandler) handleOptions(ctx context.Context, c *gin.Context, callback *slackapi.InteractionCallback) {
	channelID := callback.View.PrivateMetadata
	if channelID == "" {
		channelID = callback.Channel.ID
	}

	options, err := h.svc.FAQ.ListOptions(ctx, channelID)
	if err != nil {
		log.Printf("failed to list options for %s: %v", channelID, err)
		c.JSON(http.StatusOK, optionsResponse{Options: []*slackapi.OptionBlockObject{}})
		return
	}

	typed := strings.ToLower(strings.TrimSpace(callback.Value))
	resp := optionsResponse{Options: make([]*slackapi.OptionBlockObject, 0, len(options))}
	for _, opt := range options {
		if typed != "" && !strings.Contains(strings.ToLower(opt.Label), typed) {
			continue
		}
		resp.Options = append(resp.Options, slackapi.NewOptionBlockObject(
			opt.Value,
			slackapi.NewTextBlockObject("plain_text", opt.Label, false, false),
			nil,
		))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SlackHandler) handleBlockAction(ctx context.Context, c *gin.Context, callback *slackapi.InteractionCallback) {
	if h.cfg.FAQ.Backend != config.BackendDatabase || len(callback.ActionCallback.BlockActions) == 0 {
		ok(c)
		return
	}

	action := callback.ActionCallback.BlockActions[0]
	pendingID, err := parseFAQID(action.Value)
	if err != nil {
		log.Printf("ignoring action %s with bad value %q", action.ActionID, action.Value)
		ok(c)
		return
	}

	switch action.ActionID {
	case botslack.ActionApproveFAQ:
		_, err := h.svc.FAQ.Approve(ctx, pendingID, callback.User.ID)
		h.respondDecision(ctx, c, callback, err)
	case botslack.ActionRejectFAQ:
		// 驳回需要审核人填写原因
		if err := h.messenger.OpenView(ctx, callback.TriggerID, botslack.BuildRejectReasonModal(pendingID)); err != nil {
			log.Printf("failed to open reject modal: %v", err)
		}
		ok(c)
	default:
		ok(c)
	}
}

// respondDecision 审核操作的回执：幂等空操作也按成功处理
func (h *SlackHandler) respondDecision(ctx context.Context, c *gin.Context, callback *slackapi.InteractionCallback, err error) {
	switch {
	case err == nil:
		ok(c)
	case faq.IsForbidden(err):
		h.tellUser(ctx, callback, "Only registered reviewers can decide on FAQs.")
		ok(c)
	default:
		log.Printf("decision failed: %v", err)
		h.tellUser(ctx, callback, genericFailureText)
		ok(c)
	}
}

func (h *SlackHandler) tellUser(ctx context.Context, callback *slackapi.InteractionCallback, text string) {
	if callback.Channel.ID == "" || callback.User.ID == "" {
		return
	}
	if err := h.messenger.PostEphemeral(ctx, callback.Channel.ID, callback.User.ID, text); err != nil {
		log.Printf("failed to notify user: %v", err)
	}
}

func (h *SlackHandler) handleViewSubmission(ctx context.Context, c *gin.Context, callback *slackapi.InteractionCallback) {
	switch callback.View.CallbackID {
	case botslack.CallbackSubmitFAQ:
		h.handleSubmitView(ctx, c, callback)
	case botslack.CallbackAskFAQ:
		h.handleAskView(ctx, c, callback)
	case botslack.CallbackRejectReason:
		h.handleRejectView(ctx, c, callback)
	default:
		ok(c)
	}
}

func (h *SlackHandler) handleSubmitView(ctx context.Context, c *gin.Context, callback *slackapi.InteractionCallback) {
	if h.cfg.FAQ.Backend != config.BackendDatabase {
		ok(c)
		return
	}

	question := viewValue(callback, botslack.BlockIDQuestion, botslack.ActionIDQuestion).Value
	answer := viewValue(callback, botslack.BlockIDAnswer, botslack.ActionIDAnswer).Value
	isGlobal := len(viewValue(callback, botslack.BlockIDScope, botslack.ActionIDScope).SelectedOptions) > 0
	channels := viewValue(callback, botslack.BlockIDChannels, botslack.ActionIDChannels).SelectedConversations

	_, err := h.svc.FAQ.Submit(ctx, &faq.SubmitRequest{
		SubmitterID: callback.User.ID,
		IsGlobal:    isGlobal,
		Question:    question,
		Answer:      answer,
		ChannelIDs:  channels,
	})
	switch {
	case err == nil:
		ok(c)
	case faq.IsValidation(err):
		viewErrors(c, map[string]string{
			botslack.BlockIDChannels: "Select at least one channel, or mark the FAQ as global.",
		})
	default:
		log.Printf("failed to submit FAQ: %v", err)
		viewErrors(c, map[string]string{
			botslack.BlockIDQuestion: genericFailureText,
		})
	}
}

func (h *SlackHandler) handleAskView(ctx context.Context, c *gin.Context, callback *slackapi.InteractionCallback) {
	channelID := callback.View.PrivateMetadata
	selected := viewValue(callback, botslack.BlockIDFAQSelect, botslack.ActionIDFAQSelect).SelectedOption.Value

	res, err := h.svc.FAQ.Resolve(ctx, channelID, selected)
	if err != nil {
		log.Printf("failed to resolve selection %q in %s: %v", selected, channelID, err)
		viewErrors(c, map[string]string{botslack.BlockIDFAQSelect: genericFailureText})
		return
	}
	if res.Outcome != faq.OutcomeFound {
		viewErrors(c, map[string]string{botslack.BlockIDFAQSelect: "That FAQ is no longer available."})
		return
	}

	if err := h.messenger.PostMessage(ctx, channelID, fmt.Sprintf("*Q:* %s\n*A:* %s", res.Question, res.Answer)); err != nil {
		log.Printf("failed to post answer: %v", err)
	}
	ok(c)
}

func (h *SlackHandler) handleRejectView(ctx context.Context, c *gin.Context, callback *slackapi.InteractionCallback) {
	if h.cfg.FAQ.Backend != config.BackendDatabase {
		ok(c)
		return
	}

	pendingID, err := parseFAQID(callback.View.PrivateMetadata)
	if err != nil {
		ok(c)
		return
	}
	reason := viewValue(callback, botslack.BlockIDReason, botslack.ActionIDReason).Value

	_, err = h.svc.FAQ.Reject(ctx, pendingID, callback.User.ID, reason)
	switch {
	case err == nil:
		ok(c)
	case faq.IsForbidden(err):
		viewErrors(c, map[string]string{botslack.BlockIDReason: "Only registered reviewers can decide on FAQs."})
	default:
		log.Printf("failed to reject FAQ %d: %v", pendingID, err)
		viewErrors(c, map[string]string{botslack.BlockIDReason: genericFailureText})
	}
}

// Events 处理Events API回调
func (h *SlackHandler) Events(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.String(http.StatusOK, challenge.Challenge)
	case slackevents.CallbackEvent:
		if ev, isMention := event.InnerEvent.Data.(*slackevents.AppMentionEvent); isMention {
			if err := h.messenger.AddReaction(c.Request.Context(), ev.Channel, ev.TimeStamp, mentionReaction); err != nil {
				log.Printf("failed to react to mention: %v", err)
			}
		}
		ok(c)
	default:
		ok(c)
	}
}

func (h *SlackHandler) trustedApp(appID string) bool {
	return h.cfg.Slack.AppID == "" || appID == h.cfg.Slack.AppID
}

func viewValue(callback *slackapi.InteractionCallback, blockID, actionID string) slackapi.BlockAction {
	if callback.View.State == nil {
		return slackapi.BlockAction{}
	}
	return callback.View.State.Values[blockID][actionID]
}

func parseFAQID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid FAQ id %q: %w", s, err)
	}
	return uint(id), nil
}

// parseUserMention 解析 "<@U123|name>"、"<@U123>" 或裸用户ID
func parseUserMention(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "<@")
	text = strings.TrimSuffix(text, ">")
	if i := strings.IndexByte(text, '|'); i >= 0 {
		text = text[:i]
	}
	return text
}
