package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/catalogo-json/config"
	"github.com/yourusername/catalogo-json/internal/delivery/telegram"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
	"github.com/yourusername/catalogo-json/internal/domain/repository"
	"github.com/yourusername/catalogo-json/internal/infrastructure/parser"
	"github.com/yourusername/catalogo-json/internal/infrastructure/storage"
	"github.com/yourusername/catalogo-json/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Error("Failed to load config")
		return err
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Notification is optional - the build still runs if the bot is unreachable
	var notifier repository.Notifier
	if cfg.NotificationsEnabled() {
		n, err := telegram.NewBuildNotifier(cfg.TelegramToken, cfg.AdminChatID, logger)
		if err != nil {
			logger.WithError(err).Warn("Telegram notifier unavailable, continuing without it")
		} else {
			notifier = n
		}
	}

	excel := parser.NewExcelParser(logger)
	catalogUseCase := usecase.NewCatalogUseCase(
		excel,
		excel,
		storage.NewMemoryCatalogRepository(),
		storage.NewJSONArtifactWriter(cfg.OutputDir),
		notifier,
		usecase.NewImageMatcher(cfg.ImagesDir, cfg.AnchorRowOffset, logger),
		usecase.BuildOptions{
			ProductsPath:  cfg.ProductsPath,
			ProductsSheet: cfg.ProductsSheet,
			SalesPath:     cfg.SalesPath,
			SalesSheet:    cfg.SalesSheet,
		},
		logger,
	)

	if _, err := catalogUseCase.Build(ctx); err != nil {
		var schemaErr *entity.SchemaError
		var missingErr *entity.MissingSourceError
		switch {
		case errors.As(err, &schemaErr):
			logger.WithField("missing", schemaErr.Missing).Error("Required columns missing in products sheet")
		case errors.As(err, &missingErr):
			logger.WithFields(logrus.Fields{"path": missingErr.Path, "sheet": missingErr.Sheet}).Error("Products source not readable")
		}
		logger.WithError(err).Error("❌ Catalog build failed")
		return err
	}
	return nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("Unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
