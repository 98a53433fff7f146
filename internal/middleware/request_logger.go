package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/scholaris/internal/pkg/logger"
	"github.com/emre/scholaris/internal/pkg/metrics"
)

// RequestLogger logs every finished request and feeds the HTTP metrics.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		elapsed := time.Since(start)

		route := ctx.FullPath()
		if route == "" {
			route = ctx.Request.URL.Path
		}
		status := ctx.Writer.Status()

		metrics.ObserveRequest(ctx.Request.Method, route, status, elapsed)

		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}
		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Str("clientIp", ctx.ClientIP()).
			Msg("Request handled")
	}
}
