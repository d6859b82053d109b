package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/pbis-gateway/api/swagger"
	"github.com/noah-isme/pbis-gateway/internal/handler"
	"github.com/noah-isme/pbis-gateway/internal/repository"
	"github.com/noah-isme/pbis-gateway/internal/service"
	"github.com/noah-isme/pbis-gateway/pkg/cache"
	"github.com/noah-isme/pbis-gateway/pkg/chart"
	"github.com/noah-isme/pbis-gateway/pkg/config"
	"github.com/noah-isme/pbis-gateway/pkg/database"
	"github.com/noah-isme/pbis-gateway/pkg/logger"
	"github.com/noah-isme/pbis-gateway/pkg/pbisapi"
	"github.com/noah-isme/pbis-gateway/pkg/storage"
)

// @title PBIS Gateway API
// @version 1.0.0
// @description Session-gated gateway composing the PBIS data API into dashboard pages
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := build(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to wire gateway", zap.Error(err))
	}
	defer app.close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logr.Error("server failed", zap.Error(err))
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("http shutdown incomplete", zap.Error(err))
	}
	if err := app.cico.Shutdown(shutdownCtx); err != nil {
		logr.Warn("pending cico edits were not saved", zap.Error(err))
	}
	logr.Info("server stopped")
}

type application struct {
	router *gin.Engine
	cico   *service.CICOGridService
	redis  *redis.Client
	db     *sqlx.DB
}

func (a *application) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// build wires stores, services and handlers. Background workers are bound
// to ctx and stop with it.
func build(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*application, error) {
	app := &application{}
	validate := validator.New()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	app.redis = redisClient

	var (
		sessions  repository.SessionStore
		cacheRepo service.CacheRepository
	)
	if redisClient != nil {
		sessions = repository.NewRedisSessionRepository(redisClient, logr, metricsSvc)
		cacheRepo = repository.NewCacheRepository(redisClient, logr, metricsSvc)
	} else {
		logr.Warn("redis disabled; sessions are kept in memory and dashboard caching is off")
		sessions = repository.NewMemorySessionRepository()
	}

	auditSvc := service.NewAuditService(nil, logr)
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("audit database: %w", err)
		}
		app.db = db
		if err := database.EnsureAuditSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("audit schema: %w", err)
		}
		auditSvc = service.NewAuditService(repository.NewAuditRepository(db), logr)
	}

	upstream := pbisapi.New(cfg.Upstream, logr, pbisapi.WithObserver(metricsSvc))

	broadcaster := service.NewBroadcaster(metricsSvc, logr)
	ranges := service.NewDateRangeService(sessions, broadcaster, logr, cfg.DateRange.DefaultDays)
	authSvc := service.NewAuthService(upstream, sessions, validate, auditSvc, logr, cfg.Session.Secret)
	cacheSvc := service.NewCacheService(cacheRepo, cfg.Dashboard.CacheTTL, logr)
	dashboardSvc := service.NewDashboardService(upstream, ranges, cacheSvc, logr, cfg.APIPrefix)
	rosterSvc := service.NewRosterService(upstream, validate, logr)
	tierSvc := service.NewTierService(upstream, rosterSvc, validate, logr)
	chartSvc := service.NewChartService(dashboardSvc, tierSvc, ranges, chart.NewRenderer())
	cicoSvc := service.NewCICOGridService(upstream, validate, metricsSvc, logr, service.CICOGridConfig{
		Debounce: cfg.CICO.SaveDebounce,
		Workers:  cfg.CICO.FlushWorkers,
	})
	cicoSvc.Start(ctx)
	app.cico = cicoSvc

	meetingSvc := service.NewMeetingService(upstream, ranges, validate, logr)
	reportSvc := service.NewReportService(upstream, ranges, validate, logr)

	handlers := routeHandlers{
		auth:      handler.NewAuthHandler(authSvc, cicoSvc, handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}, logr),
		dateRange: handler.NewDateRangeHandler(ranges, broadcaster),
		dashboard: handler.NewDashboardHandler(dashboardSvc, chartSvc),
		reports:   handler.NewReportHandler(dashboardSvc, reportSvc),
		users:     handler.NewUserHandler(service.NewUserService(upstream, validate, logr)),
		audit:     handler.NewAuditHandler(auditSvc),
		board:     handler.NewBoardHandler(service.NewBoardService(upstream, validate, logr), meetingSvc),
		cico:      handler.NewCICOHandler(cicoSvc),
		students: handler.NewStudentHandler(tierSvc, service.NewStudentService(upstream, logr),
			service.NewBIPService(upstream, validate, logr)),
		roster:  handler.NewRosterHandler(rosterSvc),
		metrics: handler.NewMetricsHandler(metricsSvc, upstream),
	}

	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("export storage: %w", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc := service.NewExportService(
			service.ExportSources{CICO: cicoSvc, Tiers: tierSvc, Tier3: upstream, Meetings: upstream},
			ranges, store, signer, validate, metricsSvc, logr,
			service.ExportConfig{APIPrefix: cfg.APIPrefix, CleanupInterval: cfg.Exports.CleanupInterval},
		)
		exportSvc.StartCleanup(ctx)
		handlers.exports = handler.NewExportHandler(exportSvc)
	}

	app.router = newRouter(cfg, logr, metricsSvc, authSvc, auditSvc, handlers)
	return app, nil
}
