package repository

import (
	"context"
	"errors"

	"lob-summary/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrSourceNotFound = errors.New("knowledge source not found")

var sourceColumns = []string{"id", "file_name", "checksum", "content", "issue_count", "created_at"}

// SourceRepository archives uploaded knowledge sheets so a restart can pick
// up the last upload.
type SourceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSourceRepository(db *pgxpool.Pool, logger *zap.Logger) *SourceRepository {
	return &SourceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SourceRepository) Create(ctx context.Context, src *models.KnowledgeSource) error {
	query := squirrel.Insert("knowledge_sources").
		Columns(sourceColumns...).
		Values(src.ID, src.FileName, src.Checksum, src.Content, src.IssueCount, src.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err == nil {
		r.logger.Debug("Knowledge source archived",
			zap.String("id", src.ID.String()),
			zap.String("file_name", src.FileName),
		)
	}
	return err
}

// Latest returns the most recent upload or ErrSourceNotFound.
func (r *SourceRepository) Latest(ctx context.Context) (*models.KnowledgeSource, error) {
	sql, args, err := latestQuery().ToSql()
	if err != nil {
		return nil, err
	}

	var src models.KnowledgeSource
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&src.ID, &src.FileName, &src.Checksum, &src.Content, &src.IssueCount, &src.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}

	return &src, nil
}

// List returns archived uploads newest first, without their content.
func (r *SourceRepository) List(ctx context.Context, limit, offset int) ([]*models.KnowledgeSource, error) {
	sql, args, err := listQuery(limit, offset).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*models.KnowledgeSource
	for rows.Next() {
		var src models.KnowledgeSource
		if err := rows.Scan(&src.ID, &src.FileName, &src.Checksum, &src.IssueCount, &src.CreatedAt); err != nil {
			return nil, err
		}
		sources = append(sources, &src)
	}

	return sources, rows.Err()
}

func latestQuery() squirrel.SelectBuilder {
	return squirrel.Select(sourceColumns...).
		From("knowledge_sources").
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)
}

func listQuery(limit, offset int) squirrel.SelectBuilder {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return squirrel.Select("id", "file_name", "checksum", "issue_count", "created_at").
		From("knowledge_sources").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)
}
