package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck проверяет одну зависимость сервиса.
type HealthCheck func(ctx context.Context) error

// NewRouter собирает служебный HTTP-интерфейс: /healthz и /metrics.
// Prometheus-middleware регистрирует метрики в глобальном реестре, поэтому роутер создается один раз на процесс.
func NewRouter(logger *zap.Logger, checks map[string]HealthCheck) *gin.Engine {
	router := gin.New()
	router.Use(GinZapLogger(logger.Named("HTTP")))
	router.Use(gin.Recovery())

	health := healthHandler(logger, checks)
	router.GET("/healthz", health)
	router.HEAD("/healthz", health)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)
	return router
}

func healthHandler(logger *zap.Logger, checks map[string]HealthCheck) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(gin.H, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}
