package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/quicklist/marketplace/internal/app/api/handlers"
	mw "github.com/quicklist/marketplace/internal/app/api/middleware"
	"github.com/quicklist/marketplace/internal/app/service/candidate"
	"github.com/quicklist/marketplace/internal/app/service/category"
	"github.com/quicklist/marketplace/internal/app/service/listing"
	"github.com/quicklist/marketplace/internal/app/service/order"
	"github.com/quicklist/marketplace/internal/app/service/upsell"
	cfgpkg "github.com/quicklist/marketplace/pkg/config"
	metrics "github.com/quicklist/marketplace/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	upsellMgr upsell.Manager,
	listingSvc *listing.Service,
	categorySvc *category.Service,
	candidateSvc *candidate.Service,
	orderSvc *order.Service,
) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI. doc.json is swag output and not checked in; run
	// `swag init -g cmd/api/main.go` and blank-import the docs package to
	// serve it.
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public browse APIs: no session required
	apiV1Pub := r.Group("/api/v1")
	apiV1Pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterCategoryRoutes(apiV1Pub, categorySvc)
	handlers.RegisterListingRoutes(apiV1Pub, listingSvc)
	handlers.RegisterPublicCandidateRoutes(apiV1Pub, candidateSvc)

	// Protected group using auth middleware
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.AuthMiddleware(cfg))
	handlers.RegisterUpsellRoutes(apiV1, upsellMgr)
	handlers.RegisterCandidateRoutes(apiV1, candidateSvc)
	handlers.RegisterOrderRoutes(apiV1, orderSvc)

	// Admin APIs
	handlers.RegisterAdminCategoryRoutes(apiV1.Group("/admin"), categorySvc)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
