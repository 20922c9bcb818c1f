package main

import (
	"context"
	"fmt"

	"lob-summary/internal/models"
	"lob-summary/internal/service"
	"lob-summary/pkg/config"
	"lob-summary/pkg/logger"

	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if globalFlags.csvPath != "" {
		cfg.Knowledge.CSVPath = globalFlags.csvPath
	}
	if globalFlags.tier != "" {
		cfg.Knowledge.DefaultTier = globalFlags.tier
	}
	return cfg, nil
}

func cliLogger() *zap.Logger {
	l, err := logger.New(globalFlags.logLevel)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func summaryOptions(cfg *config.Config) service.SummaryOptions {
	return service.SummaryOptions{
		DefaultTier:      models.Tier(cfg.Knowledge.DefaultTier),
		NormalizeText:    cfg.Knowledge.NormalizeText,
		MinClassifyChars: cfg.Knowledge.MinClassifyChars,
		VOCExampleLimit:  cfg.Knowledge.VOCExampleLimit,
	}
}

// openService builds a summary service with the configured sheet loaded.
func openService(ctx context.Context) (*service.SummaryService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s := service.NewSummaryService(summaryOptions(cfg), cliLogger())
	if _, err := s.Load(ctx, service.SourceFor(cfg.Knowledge.CSVPath)); err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}
	return s, nil
}
