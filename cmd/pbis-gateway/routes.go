package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/handler"
	"github.com/noah-isme/pbis-gateway/internal/middleware"
	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/internal/service"
	"github.com/noah-isme/pbis-gateway/pkg/config"
	"github.com/noah-isme/pbis-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/pbis-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/pbis-gateway/pkg/middleware/requestid"
)

type routeHandlers struct {
	auth      *handler.AuthHandler
	dateRange *handler.DateRangeHandler
	dashboard *handler.DashboardHandler
	reports   *handler.ReportHandler
	users     *handler.UserHandler
	audit     *handler.AuditHandler
	board     *handler.BoardHandler
	cico      *handler.CICOHandler
	students  *handler.StudentHandler
	roster    *handler.RosterHandler
	exports   *handler.ExportHandler
	metrics   *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, metricsSvc *service.MetricsService, authSvc *service.AuthService, auditSvc *service.AuditService, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", h.auth.Login)
	if h.exports != nil {
		api.GET("/exports/:token", h.exports.Download)
	}

	secured := api.Group("")
	secured.Use(middleware.Session(authSvc, cfg.Session.CookieName))
	admin := middleware.RequireAdmin()
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(auditSvc, action, resource)
	}

	secured.POST("/auth/logout", h.auth.Logout)
	secured.GET("/auth/me", h.auth.Me)
	secured.GET("/nav", h.dateRange.Nav)
	secured.GET("/date-range", h.dateRange.Get)
	secured.PUT("/date-range", h.dateRange.Put)
	secured.GET("/date-range/events", h.dateRange.Events)

	secured.GET("/dashboard", h.dashboard.Page)
	secured.POST("/dashboard/refresh", admin, audit(models.AuditActionDashboardReload, "dashboard"), h.dashboard.Refresh)
	secured.GET("/charts/trend.png", h.dashboard.TrendChart)
	secured.GET("/charts/big5/:dimension", h.dashboard.Big5Chart)
	secured.GET("/charts/tiers.png", h.dashboard.TiersChart)

	secured.GET("/reports/tier1", h.reports.Tier1)
	secured.GET("/reports/tier3", h.reports.Tier3)
	secured.GET("/cico/report", h.reports.CICO)
	secured.POST("/cico/ai-analysis", h.reports.CICOAnalysis)

	adminGroup := secured.Group("/admin", admin)
	adminGroup.GET("/users", h.users.List)
	adminGroup.POST("/users", audit(models.AuditActionUserCreate, "user"), h.users.Create)
	adminGroup.DELETE("/users/:id", audit(models.AuditActionUserDelete, "user"), h.users.Delete)
	adminGroup.PUT("/users/:id/role", audit(models.AuditActionRoleChange, "user"), h.users.UpdateRole)
	adminGroup.PUT("/users/:id/password", audit(models.AuditActionPasswordChange, "user"), h.users.UpdatePassword)
	adminGroup.GET("/holidays", h.users.Holidays)
	adminGroup.POST("/holidays", audit(models.AuditActionHolidayAdd, "holiday"), h.users.AddHoliday)
	adminGroup.DELETE("/holidays/:date", audit(models.AuditActionHolidayDelete, "holiday"), h.users.DeleteHoliday)
	adminGroup.GET("/audit-logs", h.audit.List)

	secured.GET("/board", h.board.Posts)
	secured.POST("/board", h.board.CreatePost)
	secured.DELETE("/board/:id", admin, audit(models.AuditActionBoardDelete, "board_post"), h.board.DeletePost)
	secured.GET("/meeting-notes", h.board.Notes)
	secured.POST("/meeting-notes", h.board.AppendNote)
	secured.POST("/meeting-notes/ai-minutes", h.board.Minutes)
	secured.GET("/meeting-notes/analysis", h.board.Analysis)

	secured.GET("/cico/grid", h.cico.Grid)
	secured.POST("/cico/grid/cells", h.cico.EditCell)
	secured.GET("/cico/grid/status", h.cico.Status)
	secured.POST("/cico/grid/flush", h.cico.Flush)
	secured.POST("/cico/generate", admin, audit(models.AuditActionCICOGenerate, "cico"), h.cico.Generate)
	secured.POST("/cico/settings", admin, audit(models.AuditActionCICOSettings, "cico"), h.cico.Settings)
	secured.POST("/cico/tier2-toggle", admin, audit(models.AuditActionTierUpdate, "cico_tier2"), h.cico.ToggleTier2)
	secured.GET("/cico/daily", h.cico.Daily)
	secured.POST("/cico/daily", h.cico.SaveDaily)

	secured.GET("/tier/status", h.students.TierStatus)
	secured.PUT("/tier/status", admin, audit(models.AuditActionTierUpdate, "tier"), h.students.UpdateTier)
	secured.PUT("/tier/enrollment", admin, audit(models.AuditActionTierUpdate, "enrollment"), h.students.UpdateEnrollment)
	secured.PUT("/tier/beable", admin, audit(models.AuditActionTierUpdate, "beable"), h.students.UpdateBeAble)
	secured.GET("/tier/cico", h.students.Tier2Records)
	secured.POST("/tier/cico", h.students.AddTier2Record)
	secured.POST("/students/tier-update", admin, audit(models.AuditActionTierUpdate, "student_tier"), h.students.ChangeTier)
	secured.GET("/students/:name", h.students.Detail)
	secured.GET("/students/:name/analysis", h.students.Analysis)
	secured.GET("/bip/:code", h.students.GetBIP)
	secured.POST("/bip/:code", h.students.SaveBIP)
	secured.POST("/bip/:code/ai-suggest", h.students.SuggestBIP)
	secured.POST("/bip/:code/ai-hypothesis", h.students.SuggestHypothesis)
	secured.POST("/bip/:code/ai-strategies", h.students.SuggestStrategies)

	secured.GET("/roster", h.roster.Structure)
	secured.GET("/roster/codes", h.roster.Codes)
	secured.POST("/roster/codes", admin, audit(models.AuditActionRosterSave, "roster_codes"), h.roster.SaveCodes)

	if h.exports != nil {
		secured.POST("/exports", h.exports.Create)
	}

	return r
}
