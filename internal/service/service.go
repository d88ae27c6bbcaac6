package service

import (
	"github.com/ashwinyue/faq-bot/internal/config"
	"github.com/ashwinyue/faq-bot/internal/repository"
	"github.com/ashwinyue/faq-bot/internal/service/faq"
	"github.com/ashwinyue/faq-bot/internal/service/reviewer"
)

// Services 服务集合，用于统一管理所有服务
type Services struct {
	FAQ      *faq.Service
	Reviewer *reviewer.Service
}

// NewServices 创建所有服务
//
// static 后端没有审核工作流，repos 为 nil，Reviewer 不可用；
// 处理器按配置的后端决定暴露哪些操作。
func NewServices(repos *repository.Repositories, cfg *config.Config, source faq.AnswerSource, notifier faq.Notifier) *Services {
	svcs := &Services{
		FAQ: faq.NewService(repos, source, notifier),
	}
	if repos != nil {
		svcs.Reviewer = reviewer.NewService(repos, cfg.Slack.AdminUserID)
	}
	return svcs
}
