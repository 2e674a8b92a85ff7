// Package app wires the analysis pipeline from configuration.
package app

import (
	"fmt"

	"statement-analyzer/internal/metrics"
	"statement-analyzer/internal/service"
	"statement-analyzer/internal/storage"
	"statement-analyzer/pkg/config"

	"go.uber.org/zap"
)

type App struct {
	Statements *service.StatementService
	Profiles   *service.ProfileSet
	Metrics    *metrics.Metrics

	closeCompleter func() error
}

func New(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*App, error) {
	profiles, err := service.LoadProfiles(cfg.Analyzer.ProfilesFile, cfg.Analyzer.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis profiles: %w", err)
	}

	store, err := storage.NewTempStore(cfg.Upload.TempDir)
	if err != nil {
		return nil, err
	}

	extractor, err := service.NewPDFExtractor(cfg.Analyzer.PDFEngine, logger)
	if err != nil {
		return nil, err
	}

	completer, closeCompleter, err := service.NewCompleter(cfg.Completion, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion service: %w", err)
	}

	ingest := service.NewIngestService(store, extractor, cfg.Analyzer.PDFEngine, cfg.Upload.MaxBytes, m, logger)
	analysis := service.NewAnalysisService(completer, cfg.Completion.Timeout, m, logger)

	logger.Info("Analysis pipeline ready",
		zap.String("provider", cfg.Completion.Provider),
		zap.String("pdf_engine", cfg.Analyzer.PDFEngine),
		zap.String("default_profile", profiles.Default()),
		zap.Strings("profiles", profiles.Names()),
		zap.String("tmp_dir", store.Dir()),
	)

	return &App{
		Statements:     service.NewStatementService(ingest, analysis, profiles, m, logger),
		Profiles:       profiles,
		Metrics:        m,
		closeCompleter: closeCompleter,
	}, nil
}

func (a *App) Close() error {
	return a.closeCompleter()
}
