package public

import (
	"github.com/gin-gonic/gin"

	"github.com/threadcap/threadcap/internal/http/response"
	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/provider"
)

// Handler 对外 API 处理器
type Handler struct {
	*provider.Container
}

// NewHandler 创建处理器
func NewHandler(container *provider.Container) *Handler {
	return &Handler{Container: container}
}

// respondError 统一错误响应；服务端错误额外记录日志
func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil && code == response.CodeInternal {
		logger.Errorw("request_failed",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}
