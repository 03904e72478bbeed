package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"patient-service/internal/core/config"
	"patient-service/internal/core/server"
	"patient-service/internal/transport/http/handler"
	mdw "patient-service/internal/transport/http/middleware"
)

// NewAPIEngine 组装中间件、运维端点与业务模块
func NewAPIEngine(l *zap.Logger, mode string, lim config.Limits, mods ...Module) *gin.Engine {
	r := server.NewRouter(mode)

	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.AccessLog(l),
		mdw.Metrics(),
	)

	// 运维端点不受限流影响
	r.GET("/health", handler.Health)
	r.GET("/metrics", mdw.MetricsHandler())

	api := r.Group("")
	if lim.RPS > 0 {
		api.Use(mdw.RateLimitPerIP(rate.Limit(lim.RPS), max(1, lim.Burst)))
	}
	if lim.MaxInFlight > 0 {
		api.Use(mdw.ConcurrencyLimit(lim.MaxInFlight))
	}
	if lim.MaxBodyBytes > 0 {
		api.Use(mdw.MaxBodyBytes(lim.MaxBodyBytes))
	}
	if lim.RequestTimeoutSec > 0 {
		api.Use(mdw.Timeout(time.Duration(lim.RequestTimeoutSec) * time.Second))
	}
	MountAll(api, mods...)

	r.NoRoute(handler.NoRoute(l))
	r.NoMethod(handler.NoMethod(l))
	return r
}
