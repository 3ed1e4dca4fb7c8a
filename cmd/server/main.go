package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/saanjh/storefront/internal/application/backfill"
	contactapp "github.com/saanjh/storefront/internal/application/contact"
	"github.com/saanjh/storefront/internal/application/storefront"
	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/domain/shared"
	"github.com/saanjh/storefront/internal/infrastructure/cache"
	"github.com/saanjh/storefront/internal/infrastructure/cms"
	"github.com/saanjh/storefront/internal/infrastructure/commerce"
	"github.com/saanjh/storefront/internal/infrastructure/config"
	"github.com/saanjh/storefront/internal/infrastructure/event"
	"github.com/saanjh/storefront/internal/infrastructure/logger"
	"github.com/saanjh/storefront/internal/infrastructure/membership"
	"github.com/saanjh/storefront/internal/infrastructure/persistence"
	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
	"github.com/saanjh/storefront/internal/interfaces/http/handler"
	"github.com/saanjh/storefront/internal/interfaces/http/middleware"
	"github.com/saanjh/storefront/internal/interfaces/http/router"
	"github.com/saanjh/storefront/internal/interfaces/web"
)

const version = "1.0.0"

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
		Service:    cfg.App.Name,
		Env:        cfg.App.Env,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Saanjh storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("base_path", cfg.App.BasePath),
	)

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if level, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		log = logsProvider.Bridge(log, level)
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Profiling.ApplicationName,
		ProfileTypes:    cfg.Profiling.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && cfg.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)
	metrics, err := telemetry.NewStorefrontMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create storefront metrics", zap.Error(err))
	}

	// Database for contact messages
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh),
		persistence.WithTracing(telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", db.Driver))

	// Content backend
	data := newContentSource(cfg, metrics, log)

	// Commerce vertical
	var vertical commerce.Vertical
	if cfg.Commerce.BaseURL != "" {
		client, err := commerce.NewClient(commerce.Config{
			BaseURL:           cfg.Commerce.BaseURL,
			APIKey:            cfg.Commerce.APIKey,
			DefaultCollection: cfg.Commerce.DefaultCollection,
			WidgetScriptURL:   cfg.Commerce.WidgetScriptURL,
			Timeout:           cfg.Commerce.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to create commerce client", zap.Error(err))
		}
		vertical = client
	} else {
		log.Warn("Commerce API not configured, serving the shop from content blends")
		vertical = commerce.NewContentCatalog(data, cfg.Commerce.DefaultCollection, "USD")
	}

	// Dedupe stores and failure log
	stores, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).Create(cfg.Backfill)
	if err != nil {
		log.Fatal("Failed to create backfill stores", zap.Error(err))
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Error closing backfill stores", zap.Error(err))
		}
	}()

	// Tasting-note backfill
	var queue *backfill.Queue
	var pageBackfill storefront.BackfillQueue
	if cfg.Backfill.Enabled {
		queue = backfill.NewQueue(backfill.Config{
			Workers:     cfg.Backfill.Workers,
			QueueSize:   cfg.Backfill.QueueSize,
			TaskTimeout: cfg.Backfill.TaskTimeout,
			DedupeTTL:   cfg.Backfill.DedupeTTL,
		}, data, stores.Idempotency, stores.Failures, log, backfill.WithMetrics(metrics))
		if err := queue.Start(ctx); err != nil {
			log.Fatal("Failed to start backfill queue", zap.Error(err))
		}
		pageBackfill = queue
		log.Info("Backfill queue started",
			zap.Int("workers", cfg.Backfill.Workers),
			zap.String("store", stores.Backend),
		)
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	inbox := event.NewIdempotentHandler(
		event.NewContactInboxNotifier(log),
		stores.Idempotency,
		shared.DefaultIdempotencyConfig(),
		log,
	)
	eventBus.Subscribe(inbox, inbox.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Services
	nav := storefront.NewNavigation(cfg.App.BasePath, vertical)
	pageService := storefront.NewPageService(data, pageBackfill, log, storefront.WithPageMetrics(metrics))
	shopService := storefront.NewShopService(vertical, metrics, log)
	contactService := contactapp.NewService(
		persistence.NewGormContactRepository(db.DB),
		eventBus,
		cfg.Contact.MaxPerEmailPerHour,
		metrics,
		log,
	)

	// Handlers
	pageHandler := handler.NewPageHandler(nav, pageService, shopService, contactService)
	systemOpts := []handler.SystemOption{handler.WithDatabase(db)}
	var backfillHandler *handler.BackfillHandler
	if queue != nil {
		systemOpts = append(systemOpts, handler.WithBackfill(queue))
		backfillHandler = handler.NewBackfillHandler(queue)
	}

	// Setup Gin
	middleware.SetupValidator()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	renderer, err := web.NewRenderer(cfg.App.BasePath)
	if err != nil {
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}
	engine.HTMLRender = renderer

	r := router.NewRouter(engine, router.WithBasePath(cfg.App.BasePath))

	// Middleware order:
	// 1. RequestID, so every later log line and span carries it
	// 2. Tracing and span attributes
	// 3. Recovery, rendering the error page for page routes
	// 4. Request logging and HTTP metrics
	// 5. Security headers, CORS and body limit
	// 6. Global rate limit
	// 7. Membership session
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.Recovery(log, r.PanicHandler(pageHandler.RenderPanic)))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   profiler.IsEnabled(),
		BasePath:  cfg.App.BasePath,
		SkipPaths: []string{"/health"},
	}))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		Meter:   meter,
		Enabled: cfg.Telemetry.Enabled,
		Logger:  log,
	}))

	var scripts []string
	if cfg.Commerce.WidgetScriptURL != "" {
		scripts = append(scripts, cfg.Commerce.WidgetScriptURL)
	}
	securityCfg := middleware.DefaultSecurityConfig(scripts...)
	securityCfg.HSTSEnabled = cfg.App.Env == "production"
	engine.Use(middleware.SecureWithConfig(securityCfg))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.Use(middleware.Membership(middleware.MembershipConfig{
		Provider: membership.NewCookieProvider(membership.CookieConfig{
			Name:   cfg.Membership.CookieName,
			MaxAge: cfg.Membership.MaxAge,
			Secure: cfg.Membership.Secure,
			Secret: cfg.Membership.Secret,
			Path:   storefront.JoinPath(cfg.App.BasePath, "/"),
		}),
		SkipPaths: []string{"/health"},
		Logger:    log,
	}))

	contactLimiter := middleware.NewRateLimiter(cfg.Contact.RateLimitRequests, cfg.Contact.RateLimitWindow)
	defer contactLimiter.Stop()
	contactLimit := middleware.RateLimitByKey(contactLimiter, func(c *gin.Context) string {
		return "contact:" + c.ClientIP()
	})

	r.Mount(router.Handlers{
		Pages:        pageHandler,
		Storefront:   handler.NewStorefrontHandler(pageService),
		Contact:      handler.NewContactHandler(contactService),
		System:       handler.NewSystemHandler(cfg.App.Name, version, systemOpts...),
		Backfill:     backfillHandler,
		ContactLimit: contactLimit,
	}).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening",
			zap.String("addr", srv.Addr),
			zap.String("pages", storefront.JoinPath(r.BasePath(), "/")),
			zap.String("api", r.APIPrefix()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if queue != nil {
		if err := queue.Stop(shutdownCtx); err != nil {
			log.Warn("Backfill queue did not drain", zap.Error(err))
		}
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Error stopping event bus", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}

	log.Info("Server exited")
	if err := logsProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down logger provider", zap.Error(err))
	}
}

// newContentSource returns the CMS client, or an empty in-memory store when
// no content backend is configured outside production.
func newContentSource(cfg *config.Config, metrics *telemetry.StorefrontMetrics, log *zap.Logger) content.DataService {
	client, err := cms.NewClient(cms.Config{
		BaseURL:          cfg.Content.BaseURL,
		APIKey:           cfg.Content.APIKey,
		Timeout:          cfg.Content.Timeout,
		MaxResponseBytes: cfg.Content.MaxResponseBytes,
	}, cms.WithMetrics(metrics))
	if err == nil {
		return client
	}
	if errors.Is(err, cms.ErrNotConfigured) && cfg.App.Env != "production" {
		log.Warn("Content backend not configured, using an empty in-memory store")
		return cms.NewMemoryStore()
	}
	log.Fatal("Failed to create content client", zap.Error(err))
	return nil
}
