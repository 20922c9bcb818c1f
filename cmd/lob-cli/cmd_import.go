package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"lob-summary/internal/models"
	"lob-summary/internal/repository"
	"lob-summary/internal/service"
	"lob-summary/pkg/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a knowledge sheet and archive it in Postgres",
	Long:  "import compiles the sheet and, when it is valid, stores it in the\nknowledge_sources table. The server restores the newest archived sheet on start.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Database.Enabled() {
		return fmt.Errorf("DB_HOST is not set")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}

	ctx := cmd.Context()
	log := cliLogger()
	db, err := postgres.NewPool(ctx, &cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	opts := summaryOptions(cfg)
	opts.Archive = &strictArchive{SourceRepository: repository.NewSourceRepository(db, log)}
	s := service.NewSummaryService(opts, log)

	info, err := s.Upload(ctx, filepath.Base(args[0]), content)
	if err != nil {
		return err
	}
	if archive := opts.Archive.(*strictArchive); archive.err != nil {
		return fmt.Errorf("archive sheet: %w", archive.err)
	}

	log.Info("Knowledge sheet imported", zap.String("file", args[0]), zap.Int("issue_types", info.TotalIssueTypes))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d issue types (sha256 %s)\n", filepath.Base(args[0]), info.TotalIssueTypes, info.Checksum)
	return nil
}

// strictArchive keeps the archive error the service only logs, so the
// command can fail on it.
type strictArchive struct {
	*repository.SourceRepository
	err error
}

func (a *strictArchive) Create(ctx context.Context, src *models.KnowledgeSource) error {
	a.err = a.SourceRepository.Create(ctx, src)
	return a.err
}
