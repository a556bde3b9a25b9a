package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/catalog-store/internal/app/generator"
	"github.com/mrops-br/catalog-store/internal/app/service"
	"github.com/mrops-br/catalog-store/internal/infrastructure/config"
	"github.com/mrops-br/catalog-store/internal/infrastructure/http"
	"github.com/mrops-br/catalog-store/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-store/internal/infrastructure/repository/memory"
	"github.com/mrops-br/catalog-store/internal/infrastructure/source"
	"github.com/mrops-br/catalog-store/internal/infrastructure/telemetry"
)

func main() {
	cfg := config.LoadConfig()

	telem, err := telemetry.NewTelemetry(&cfg.OTLP, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("catalog-store")
	meter := telem.MeterProvider.Meter("catalog-store")
	logger := telem.Logger

	logger.Info("Starting catalog fixture server")

	repo := memory.NewCatalogRepository(tracer, logger)
	gen := generator.NewGenerator(generator.Options{
		Categories: cfg.Catalog.Categories,
		Brands:     cfg.Catalog.Brands,
		Products:   cfg.Catalog.Products,
		Seed:       cfg.Catalog.Seed,
	}, tracer, logger)
	fixture := source.NewFileSource(cfg.Catalog.FixturePath, tracer, logger)

	fixtureService := service.NewFixtureService(repo, gen, fixture, tracer, meter, logger)
	if err := fixtureService.Prepare(ctx, cfg.Catalog.GenerateOnStart, cfg.Catalog.FixturePath); err != nil {
		logger.Error("Catalog fixture unavailable", "error", err.Error())
		return
	}

	catalogHandler := handler.NewCatalogHandler(fixtureService, logger)
	server := http.NewServer(&cfg.Server, catalogHandler, logger, telem)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err.Error())
	}

	logger.Info("Server stopped")
}
