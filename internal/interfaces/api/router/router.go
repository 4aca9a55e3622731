package router

import (
	"fmt"
	"net/http"

	"healthlog/internal/application/service"
	"healthlog/internal/interfaces/api/handler"
	"healthlog/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the dependencies for the router.
type Config struct {
	Journal              *service.Journal
	MedicationSetHandler *handler.MedicationSetHandler
	BackupHandler        *handler.BackupHandler
	// LineHandler is nil when LINE notifications are not configured.
	LineHandler *handler.LineHandler
	// Gatherer backs /metrics. Nil omits the route.
	Gatherer prometheus.Gatherer
	Logger   logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Line-Signature"},
		MaxAge:       300,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api")
	j := cfg.Journal
	handler.NewEntryHandler(j.Meals, cfg.Logger).Register(api.Group("/meals"))
	handler.NewEntryHandler(j.Symptoms, cfg.Logger).Register(api.Group("/symptoms"))
	handler.NewEntryHandler(j.BowelMovements, cfg.Logger).Register(api.Group("/bowel-movements"))
	handler.NewEntryHandler(j.Medications, cfg.Logger).Register(api.Group("/medications"))
	handler.NewEntryHandler(j.OtherEntries, cfg.Logger).Register(api.Group("/other-entries"))
	handler.NewEntryHandler(j.BloodPressure, cfg.Logger).Register(api.Group("/blood-pressure"))
	handler.NewEntryHandler(j.Cholesterol, cfg.Logger).Register(api.Group("/cholesterol"))
	handler.NewEntryHandler(j.Weight, cfg.Logger).Register(api.Group("/weight"))
	handler.NewEntryHandler(j.SpO2, cfg.Logger).Register(api.Group("/spo2"))
	handler.NewEntryHandler(j.BloodGlucose, cfg.Logger).Register(api.Group("/blood-glucose"))

	cfg.MedicationSetHandler.Register(api.Group("/medication-sets"))

	api.GET("/export", cfg.BackupHandler.Export)
	api.POST("/import", cfg.BackupHandler.Import)

	// LINE Webhook Endpoint
	// Note: LINE Platform requires POST for webhook
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
