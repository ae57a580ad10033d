package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/safeexplore/internal/config"
	"github.com/kailas-cloud/safeexplore/internal/db"
	"github.com/kailas-cloud/safeexplore/internal/db/memory"
	dbValkey "github.com/kailas-cloud/safeexplore/internal/db/valkey"
	domassist "github.com/kailas-cloud/safeexplore/internal/domain/assistant"
	logpkg "github.com/kailas-cloud/safeexplore/internal/logger"
	"github.com/kailas-cloud/safeexplore/internal/metrics"
	"github.com/kailas-cloud/safeexplore/internal/repository/catalog"
	prefsrepo "github.com/kailas-cloud/safeexplore/internal/repository/prefs"
	chiTransport "github.com/kailas-cloud/safeexplore/internal/transport/chi"
	assistantuc "github.com/kailas-cloud/safeexplore/internal/usecase/assistant"
	countriesuc "github.com/kailas-cloud/safeexplore/internal/usecase/countries"
	exploreuc "github.com/kailas-cloud/safeexplore/internal/usecase/explore"
	finderuc "github.com/kailas-cloud/safeexplore/internal/usecase/finder"
	healthuc "github.com/kailas-cloud/safeexplore/internal/usecase/health"
	lawsuc "github.com/kailas-cloud/safeexplore/internal/usecase/laws"
	prefsuc "github.com/kailas-cloud/safeexplore/internal/usecase/prefs"
	trackeruc "github.com/kailas-cloud/safeexplore/internal/usecase/tracker"
	"github.com/kailas-cloud/safeexplore/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting safeexplore API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Strings("storage_addrs", cfg.Storage.Addrs),
		zap.String("timezone", cfg.Query.Timezone),
	)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded", zap.String("source", cat.Source()))

	store, err := openStore(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to create preference store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Preference store not ready", zap.Error(err))
	}
	logger.Info("Connected to preference store")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics(prometheus.DefaultRegisterer)
	metrics.RegisterPipelineMetrics(prometheus.DefaultRegisterer)

	// Create use case services
	trackerSvc := trackeruc.New(cat,
		trackeruc.WithLocation(cfg.Location()),
		trackeruc.WithDeadlineLimit(cfg.Query.DeadlineLimit),
	)
	exploreSvc := exploreuc.New(cat)
	finderSvc := finderuc.New(cat)
	lawsSvc := lawsuc.New(cat)
	countriesSvc := countriesuc.New(cat)
	prefsSvc := prefsuc.New(prefsrepo.New(store, cfg.Storage.KeyPrefix), prefsuc.WithCountries(countriesSvc))
	assistantSvc := assistantuc.New(domassist.New())
	healthSvc := healthuc.New(store, cat)

	server := chiTransport.NewServer(
		trackerSvc, exploreSvc, finderSvc, lawsSvc, countriesSvc, prefsSvc, assistantSvc, healthSvc,
		chiTransport.WithLocation(cfg.Location()),
		chiTransport.WithAssistantLimiter(
			chiTransport.NewRateLimiter(cfg.RateLimit.AssistantRPS, cfg.RateLimit.AssistantBurst),
		),
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore creates the preference store for the configured driver.
// valkey and redis share the RESP client.
func openStore(cfg config.StorageConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverValkey, config.DriverRedis:
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("%s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				route = rc.RoutePattern()
			}

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
