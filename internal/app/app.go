package app

import (
	"context"
	"net/http"

	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/config"
	"go-attendance/internal/shared/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App owns the long-lived resources created by BuildApp.
type App struct {
	closers []func()
	cancel  context.CancelFunc
}

// Close stops background workers and releases connections in reverse order.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func BuildApp(router *gin.Engine, cfg config.Config) (*App, error) {
	logger := zap.L().Named("app")
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{cancel: cancel}

	// 1. Setup Infrastructure
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	inf, err := openResources(ctx, cfg, a)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Info("infrastructure ready",
		zap.String("store_driver", cfg.StoreDriver),
		zap.Bool("redis", inf.rdb != nil),
		zap.Bool("kafka", cfg.KafkaBroker != ""),
	)

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.StoreDriver})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// 2. Register Modules & Routes
	if err := registerModules(ctx, router, cfg, inf, m); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}
