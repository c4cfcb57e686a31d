package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"token_analyzer/internal/app/port"
	"token_analyzer/internal/client"
	"token_analyzer/internal/config"
	"token_analyzer/internal/infrastructure/cache"
	"token_analyzer/internal/infrastructure/chains"
	"token_analyzer/internal/infrastructure/restapi"
	"token_analyzer/internal/infrastructure/tokenregistry"
	"token_analyzer/internal/infrastructure/txsource"
	"token_analyzer/internal/pkg/logger"
	"token_analyzer/internal/service"
	"token_analyzer/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	// .env is optional; real deployments pass environment directly.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck // flush on exit

	cfgPath := getEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	logger.InitSlog(cfg.Logging.Level)

	// The process-wide slog default routes through zap.
	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	// Upstream clients.
	dexScreenerTimeout := time.Duration(cfg.DEXScreener.RequestTimeoutMillis) * time.Millisecond
	dexScreenerClient := client.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		dexScreenerTimeout,
		zapLogger,
		cfg.DEXScreener.RequestsPerSecond,
		cfg.DEXScreener.Burst,
	)
	zapLogger.Info("DEXScreener client initialized")

	geckoTerminalTimeout := time.Duration(cfg.GeckoTerminal.RequestTimeoutMillis) * time.Millisecond
	geckoTerminalClient := client.NewGeckoTerminalClient(
		cfg.GeckoTerminal.BaseURL,
		geckoTerminalTimeout,
		zapLogger,
		cfg.GeckoTerminal.CandleLimit,
	)
	zapLogger.Info("GeckoTerminal client initialized")

	// Analysis cache backend.
	cacheTTL := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	var analysisCache port.AnalysisCache
	if cfg.Cache.Backend == "redis" {
		analysisCache = cache.NewRedisAnalysisCache(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, zapLogger)
	} else {
		analysisCache = cache.NewMemoryAnalysisCache(cacheTTL, time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute)
	}
	zapLogger.Info("Analysis cache initialized", zap.String("backend", cfg.Cache.Backend))

	// Chain definitions and token registry.
	slogAdapter := logger.NewSlogAdapter()
	chainProvider := chains.NewChainDefinitionProvider(slogAdapter)

	registry := tokenregistry.NewRegistry(slogAdapter)
	if err := registry.Load(cfg.TokensFile, chainProvider); err != nil {
		log.Fatalf("Failed to load token registry: %v", err)
	}

	// Services.
	validator := service.NewPairValidator(zapLogger)
	selector := service.NewPairSelector(zapLogger)
	analysisService := service.NewTokenAnalysisService(
		dexScreenerClient,
		geckoTerminalClient,
		analysisCache,
		chainProvider,
		validator,
		selector,
		cacheTTL,
		zapLogger,
	)
	zapLogger.Info("TokenAnalysisService initialized")

	txSource := txsource.NewSimulatedSource(zapLogger, cfg.Transactions.MinFills, cfg.Transactions.MaxFills)
	pnlService := service.NewPnLService(txSource, analysisService, zapLogger)
	zapLogger.Info("PnLService initialized")

	// HTTP surface.
	handler := restapi.NewAnalysisHandler(analysisService, pnlService, chainProvider, registry, zapLogger)
	router := restapi.SetupRouter(handler)

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}
	zapLogger.Info("Pprof endpoints enabled under /debug/pprof")

	addr := cfg.Server.Port
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
