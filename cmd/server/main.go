package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iamthegreatdestroyer/hyperbox/internal/api"
	"github.com/iamthegreatdestroyer/hyperbox/internal/config"
	"github.com/iamthegreatdestroyer/hyperbox/internal/logging"
	"github.com/iamthegreatdestroyer/hyperbox/internal/runtime"
	"github.com/iamthegreatdestroyer/hyperbox/internal/stats"
	"github.com/iamthegreatdestroyer/hyperbox/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.FilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	info := version.Get()
	logger.Info("Starting HyperBox stats daemon",
		zap.String("version", info.Version),
		zap.String("gitCommit", info.GitCommit),
		zap.String("buildDate", info.BuildDate),
		zap.String("goVersion", info.GoVersion),
		zap.String("addr", cfg.Server.Addr),
		zap.String("backend", cfg.Runtime.Backend),
	)

	// Select the runtime backend
	var rt runtime.Runtime
	switch cfg.Runtime.Backend {
	case "docker":
		rt = runtime.NewDockerClient(logger, cfg.Runtime.DockerHost, cfg.Runtime.APIVersion)
	case "host":
		rt = runtime.NewHostRuntime(logger)
	}

	interval, err := cfg.Interval()
	if err != nil {
		logger.Fatal("Invalid stats interval", zap.Error(err))
	}

	statsCfg := stats.DefaultConfig()
	statsCfg.Interval = interval
	statsCfg.MaxPoints = cfg.Stats.MaxPoints
	statsCfg.RetentionCycles = cfg.Stats.RetentionCycles
	statsCfg.MaxConcurrentFetches = cfg.Stats.MaxConcurrentFetches

	statsService := stats.NewService(logger, rt, statsCfg)

	// Create API server
	apiServer := api.NewServer(logger, cfg, statsService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := apiServer.Start(ctx); err != nil {
		logger.Fatal("Failed to start server components", zap.Error(err))
	}
	defer apiServer.Stop()

	// Begin polling immediately; consumers can stop/restart via the API
	statsService.Start()
	defer statsService.Stop()

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: apiServer.Handler(),
	}

	go func() {
		logger.Info("Server starting", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server exited")
}
