package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	payrollapp "github.com/refresquitos/backend/internal/application/payroll"
	"github.com/refresquitos/backend/internal/application/records"
	"github.com/refresquitos/backend/internal/application/reporting"
	"github.com/refresquitos/backend/internal/infrastructure/cache"
	"github.com/refresquitos/backend/internal/infrastructure/config"
	"github.com/refresquitos/backend/internal/infrastructure/logger"
	"github.com/refresquitos/backend/internal/infrastructure/persistence"
	"github.com/refresquitos/backend/internal/interfaces/http/handler"
	"github.com/refresquitos/backend/internal/interfaces/http/middleware"
	"github.com/refresquitos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Refresquitos Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize the report cache. Redis is optional: without it the
	// services fall back to a no-op cache and recompute reports per request.
	var reportCache cache.ReportCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisReportCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      time.Duration(cfg.Redis.TTL) * time.Second,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		reportCache = redisCache
		log.Info("Redis report cache connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		reportCache = cache.NewNoopReportCache()
		log.Info("Report cache disabled, reports computed per request")
	}
	defer func() {
		if err := reportCache.Close(); err != nil {
			log.Error("Error closing report cache", zap.Error(err))
		}
	}()

	// Initialize repositories
	productionRepo := persistence.NewGormProductionRecordRepository(db.DB)
	saleRepo := persistence.NewGormSaleRecordRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRecordRepository(db.DB)
	absenceRepo := persistence.NewGormAbsenceRecordRepository(db.DB)
	cycleRepo := persistence.NewGormEmployeeCycleRepository(db.DB)
	bonusRepo := persistence.NewGormEmployeeBonusRepository(db.DB)

	// Business rules come from configuration
	rules := cfg.Business.Rules()
	policy := cfg.Business.CyclePolicy()

	// Initialize application services
	recordService := records.NewRecordService(
		productionRepo, saleRepo, expenseRepo, absenceRepo, reportCache, rules,
	)
	reportService := reporting.NewReportService(
		productionRepo, saleRepo, expenseRepo, reportCache, rules, log,
	)
	payrollService := payrollapp.NewPayrollService(
		cycleRepo, bonusRepo, saleRepo, absenceRepo, policy,
	)

	// Set up the HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	middleware.SetupValidator()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsCfg),
		middleware.Secure(),
	)

	// Register routes
	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db))
	r.Register(handler.NewRecordsHandler(recordService))
	r.Register(handler.NewReportHandler(reportService))
	r.Register(handler.NewPayrollHandler(payrollService))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTP.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal, then shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
