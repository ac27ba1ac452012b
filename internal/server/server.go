package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	announcementdomain "github.com/smallbiznis/estatehub/internal/announcement/domain"
	"github.com/smallbiznis/estatehub/internal/config"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	feedomain "github.com/smallbiznis/estatehub/internal/fee/domain"
	maintenancedomain "github.com/smallbiznis/estatehub/internal/maintenance/domain"
	"github.com/smallbiznis/estatehub/internal/observability"
	obslogger "github.com/smallbiznis/estatehub/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/estatehub/internal/observability/metrics"
	obstracing "github.com/smallbiznis/estatehub/internal/observability/tracing"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	reportingdomain "github.com/smallbiznis/estatehub/internal/reporting/domain"
	"github.com/smallbiznis/estatehub/internal/reporting/export"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, log *zap.Logger) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.Middleware())
	r.Use(ErrorHandlingMiddleware(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", httpMetrics.Handler())

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	tokens          *TokenParser
	estateSvc       estatedomain.Service
	unitSvc         unitdomain.Service
	feeSvc          feedomain.Service
	paymentSvc      paymentdomain.Service
	ticketSvc       maintenancedomain.Service
	announcementSvc announcementdomain.Service
	reportSvc       reportingdomain.Service
	exporter        *export.Generator
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	EstateSvc       estatedomain.Service
	UnitSvc         unitdomain.Service
	FeeSvc          feedomain.Service
	PaymentSvc      paymentdomain.Service
	TicketSvc       maintenancedomain.Service
	AnnouncementSvc announcementdomain.Service
	ReportSvc       reportingdomain.Service
	Exporter        *export.Generator
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		tokens:          NewTokenParser(p.Cfg.AuthJWTSecret, p.Cfg.AuthJWTIssuer),
		estateSvc:       p.EstateSvc,
		unitSvc:         p.UnitSvc,
		feeSvc:          p.FeeSvc,
		paymentSvc:      p.PaymentSvc,
		ticketSvc:       p.TicketSvc,
		announcementSvc: p.AnnouncementSvc,
		reportSvc:       p.ReportSvc,
		exporter:        p.Exporter,
	}

	s.registerAPIRoutes()
	s.registerFallback()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.AuthRequired())

	// -------- Estates --------
	api.GET("/estates", s.ListEstates)
	api.POST("/estates", s.CreateEstate)
	api.GET("/estates/:id", s.GetEstateByID)
	api.PATCH("/estates/:id", s.UpdateEstate)
	api.DELETE("/estates/:id", s.DeleteEstate)

	// -------- Units --------
	api.GET("/units", s.ListUnits)
	api.POST("/units", s.CreateUnit)
	api.GET("/units/:id", s.GetUnitByID)
	api.PATCH("/units/:id", s.UpdateUnit)
	api.DELETE("/units/:id", s.DeleteUnit)

	// -------- Fees --------
	api.GET("/fees", s.ListFees)
	api.POST("/fees", s.CreateFee)
	api.GET("/fees/:id", s.GetFeeByID)
	api.PATCH("/fees/:id", s.UpdateFee)
	api.DELETE("/fees/:id", s.DeleteFee)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/:id", s.GetPaymentByID)
	api.PATCH("/payments/:id", s.UpdatePayment)
	api.POST("/payments/:id/mark-paid", s.MarkPaymentPaid)
	api.POST("/payments/:id/mark-unpaid", s.MarkPaymentUnpaid)
	api.DELETE("/payments/:id", s.DeletePayment)

	// -------- Maintenance tickets --------
	api.GET("/maintenance-tickets", s.ListTickets)
	api.POST("/maintenance-tickets", s.CreateTicket)
	api.GET("/maintenance-tickets/:id", s.GetTicketByID)
	api.PATCH("/maintenance-tickets/:id", s.UpdateTicket)
	api.POST("/maintenance-tickets/:id/resolve", s.ResolveTicket)
	api.POST("/maintenance-tickets/:id/reopen", s.ReopenTicket)
	api.DELETE("/maintenance-tickets/:id", s.DeleteTicket)

	// -------- Announcements --------
	api.GET("/announcements", s.ListAnnouncements)
	api.POST("/announcements", s.CreateAnnouncement)
	api.GET("/announcements/:id", s.GetAnnouncementByID)
	api.PATCH("/announcements/:id", s.UpdateAnnouncement)
	api.DELETE("/announcements/:id", s.DeactivateAnnouncement)

	// -------- Reports --------
	api.GET("/reports/fees/:id/payment-status", s.GetFeePaymentStatus)
	api.GET("/reports/fees/:id/payment-status.pdf", s.ExportFeePaymentStatusPDF)
	api.GET("/reports/estates/:id/summary", s.GetEstateSummary)
	api.GET("/reports/estates/:id/summary.xlsx", s.ExportEstateSummary)
	api.GET("/reports/estates/:id/summary.pdf", s.ExportEstateSummaryPDF)
	api.GET("/reports/overall", s.GetOverallSummary)
	api.GET("/reports/overall.xlsx", s.ExportOverallSummary)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
