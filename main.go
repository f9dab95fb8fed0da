package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"strokerisk/config"
	qhttp "strokerisk/http"
	"strokerisk/inference"
	"strokerisk/logging"
	"strokerisk/ml"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "strokerisk: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	dotenvPath := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	// 1. Load config
	if err := config.LoadDotenv(*dotenvPath); err != nil {
		return exitConfig, fmt.Errorf("load %s: %w", *dotenvPath, err)
	}
	cfg, err := config.Load(*configPath, os.Environ())
	if err != nil {
		return exitConfig, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Console:    cfg.Log.Console,
	})
	if err != nil {
		return exitConfig, err
	}
	defer closeLog()

	// 2. Load model
	spec := ml.StrokeFeatures()
	model, err := ml.LoadModel(cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		logger.Error("failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
		return exitConfig, err
	}
	svc, err := inference.NewService(inference.Config{
		Token:  cfg.SecretToken,
		Spec:   spec,
		Model:  model,
		Logger: logger,
	})
	if err != nil {
		logger.Error("model does not fit the feature contract", zap.Error(err))
		return exitConfig, err
	}
	logger.Info("model loaded",
		zap.String("path", cfg.Model.Path),
		zap.String("type", ml.ModelType(model)),
		zap.Int("features", spec.Len()),
		zap.Float64("threshold", inference.Threshold))

	// 3. Start HTTP server
	serverConfig := qhttp.ServerConfig{
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if cfg.Metrics.Enabled {
		serverConfig.MetricsPath = cfg.Metrics.Path
	}
	server := qhttp.NewServer(serverConfig, svc, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err, ok := <-errCh:
		if ok {
			return exitRuntime, err
		}
	}

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return exitRuntime, err
	}

	logger.Info("exiting")
	return exitOK, nil
}
