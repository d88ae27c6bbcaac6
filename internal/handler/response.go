package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	slackapi "github.com/slack-go/slack"
)

// slashResponse 斜杠命令的即时响应
type slashResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// ephemeral 仅发起人可见的命令响应
func ephemeral(c *gin.Context, text string) {
	c.JSON(http.StatusOK, slashResponse{ResponseType: "ephemeral", Text: text})
}

// inChannel 频道内可见的命令响应
func inChannel(c *gin.Context, text string) {
	c.JSON(http.StatusOK, slashResponse{ResponseType: "in_channel", Text: text})
}

// ok 成功形响应（空体200），用于交互回执与静默丢弃
func ok(c *gin.Context) {
	c.Status(http.StatusOK)
}

// optionsResponse 外部选择器的选项响应
type optionsResponse struct {
	Options []*slackapi.OptionBlockObject `json:"options"`
}

// viewErrors 表单校验失败响应，错误按块ID展示
func viewErrors(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusOK, gin.H{
		"response_action": "errors",
		"errors":          errs,
	})
}
