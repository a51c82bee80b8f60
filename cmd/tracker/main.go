package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pricetrack/internal/config"
	cronrunner "pricetrack/internal/cron"
	"pricetrack/internal/db"
	"pricetrack/internal/handler"
	"pricetrack/internal/logger"
	"pricetrack/internal/monitor"
	"pricetrack/internal/notify"
	gormrepository "pricetrack/internal/repository/gorm"
	"pricetrack/internal/scraper"
	"pricetrack/internal/service"
)

func main() {
	cfgPath := os.Getenv("PT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("PT_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	var renderer scraper.Renderer
	if cfg.Scraper.RenderEnabled {
		renderer = scraper.NewRodRenderer(cfg.Scraper)
	}
	extractor := &scraper.Service{
		Fetcher:  scraper.NewFetcher(cfg.Scraper),
		Renderer: renderer,
		Logger:   logger,
	}

	var notifier notify.Notifier
	if cfg.Notifier.SMTPHost != "" {
		notifier = notify.NewSMTP(cfg.Notifier)
	} else {
		logger.Warn("smtp host not configured, alert emails are logged only")
		notifier = &notify.LogNotifier{Logger: logger}
	}

	alertEvaluator := &monitor.AlertEvaluator{
		Repo:     store,
		Notifier: notifier,
		Logger:   logger,
	}
	scheduler := &monitor.Scheduler{
		Repo:    store,
		Scraper: extractor,
		Alerts:  alertEvaluator,
		Logger:  logger,
		Config:  cfg.Monitor,
	}

	productService := &service.ProductService{
		Repo:    store,
		Scraper: extractor,
		Logger:  logger,
	}
	priceService := &service.PriceService{
		Repo:    store,
		Scraper: extractor,
		Logger:  logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	productHandler := &handler.ProductHandler{Service: productService, Logger: logger}
	productHandler.Register(engine)
	alertHandler := &handler.AlertHandler{Repo: store, Logger: logger}
	alertHandler.Register(engine)
	priceHandler := &handler.PriceHandler{
		Service:     priceService,
		DefaultDays: cfg.History.DefaultDays,
		Logger:      logger,
	}
	priceHandler.Register(engine)
	monitorHandler := &handler.MonitorHandler{Scheduler: scheduler, Logger: logger}
	monitorHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err := cronRunner.Add(cfg.Cron.PriceCheck, func(ctx context.Context) {
			if err := scheduler.RunBatch(ctx); err != nil {
				logger.Warn("cron price check failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register price check failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-User-ID")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
