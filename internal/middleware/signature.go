package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	slackapi "github.com/slack-go/slack"
)

// SignatureMiddleware Slack请求签名校验
//
// 校验 X-Slack-Signature / X-Slack-Request-Timestamp，签名不合法返回401。
// 校验后恢复请求体供后续处理读取。
func SignatureMiddleware(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		verifier, err := slackapi.NewSecretsVerifier(c.Request.Header, signingSecret)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(io.TeeReader(c.Request.Body, &verifier))
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if err := verifier.Ensure(); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}
