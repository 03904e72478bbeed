package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"patient-service/internal/domain"
	resp "patient-service/internal/transport/http/response"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, resp.OK(gin.H{"status": "UP"}))
}

// NoRoute 未匹配路由
func NoRoute(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		WriteError(c, l, domain.NotFound("No route found for %s %s", c.Request.Method, c.Request.URL.Path))
	}
}

// NoMethod 路径存在但方法不支持
func NoMethod(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := fmt.Sprintf("HTTP method not supported: Request method '%s' is not supported", c.Request.Method)
		WriteError(c, l, domain.MethodNotAllowed(msg))
	}
}
