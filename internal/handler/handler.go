package handler

import (
	"github.com/ashwinyue/faq-bot/internal/config"
	"github.com/ashwinyue/faq-bot/internal/service"
	botslack "github.com/ashwinyue/faq-bot/internal/slack"
)

// Handlers 处理器集合
type Handlers struct {
	Slack *SlackHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(cfg *config.Config, svc *service.Services, messenger *botslack.Messenger) *Handlers {
	return &Handlers{
		Slack: NewSlackHandler(cfg, svc, messenger),
	}
}
