package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"patient-service/internal/domain"
	mdw "patient-service/internal/transport/http/middleware"
	resp "patient-service/internal/transport/http/response"
)

// StatusOf Kind -> HTTP 状态码
func StatusOf(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInvalid, domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// WriteError 统一错误出口：4xx 记 warn，5xx 记 error 且不外泄细节
func WriteError(c *gin.Context, l *zap.Logger, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		l.Warn("request timed out", zap.String("rid", c.GetString(mdw.KeyRequestID)), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, resp.Error("request timed out"))
		return
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		de = &domain.Error{Kind: domain.KindUnexpected, Err: err}
	}
	status := StatusOf(de.Kind)
	fields := []zap.Field{
		zap.String("rid", c.GetString(mdw.KeyRequestID)),
		zap.String("kind", de.Kind.String()),
		zap.Int("status", status),
		zap.Error(err),
	}

	switch de.Kind {
	case domain.KindInvalid:
		l.Warn("validation failed", fields...)
		c.AbortWithStatusJSON(status, resp.Fields(de.Fields))
	case domain.KindUnexpected:
		l.Error("unexpected error", fields...)
		c.AbortWithStatusJSON(status, resp.Error(resp.MsgUnexpected))
	default:
		l.Warn("request rejected", fields...)
		c.AbortWithStatusJSON(status, resp.Error(de.Msg))
	}
}
