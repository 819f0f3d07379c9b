package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/alquiler/internal/config"
	"github.com/dropDatabas3/alquiler/internal/http/server"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"

	// Registra los adapters de store (mongo, memory) vía init().
	_ "github.com/dropDatabas3/alquiler/internal/store/adapters/dal"
)

func main() {
	envFile := flag.String("env-file", ".env", "archivo .env a cargar (si existe)")
	configPath := flag.String("config", getenv("CONFIG_PATH", "configs/config.yaml"), "ruta del config.yaml")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("no se pudo cargar %s: %v", *envFile, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "alquiler",
		Version:     cfg.App.Version,
	})
	defer func() { _ = logger.Sync() }()
	lg := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.Build(ctx, cfg)
	if err != nil {
		lg.Fatal("wiring failed", logger.Err(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			lg.Warn("cleanup error", logger.Err(err))
		}
	}()

	err = server.Run(ctx, server.Options{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, app.Handler)
	if err != nil {
		lg.Error("server stopped", logger.Err(err))
		return
	}
	lg.Info("server stopped")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
