package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"lob-summary/internal/models"
	"lob-summary/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SourceArchive stores uploaded sheets. *repository.SourceRepository
// satisfies it.
type SourceArchive interface {
	Create(ctx context.Context, src *models.KnowledgeSource) error
	Latest(ctx context.Context) (*models.KnowledgeSource, error)
}

type SummaryOptions struct {
	DefaultTier      models.Tier
	NormalizeText    bool
	MinClassifyChars int
	VOCExampleLimit  int
	UploadDir        string
	Scorer           Scorer
	Archive          SourceArchive
}

// SummaryService serves generation, listing and validation calls against the
// active knowledge base snapshot. Reloads build a new snapshot and swap it in
// atomically; each call reads the pointer once.
type SummaryService struct {
	kb           atomic.Pointer[models.KnowledgeBase]
	ingestor     *Ingestor
	classifier   *Classifier
	selector     *ResolutionSelector
	renderer     *Renderer
	archive      SourceArchive
	uploadDir    string
	exampleLimit int
	logger       *zap.Logger
}

func NewSummaryService(opts SummaryOptions, logger *zap.Logger) *SummaryService {
	if opts.VOCExampleLimit <= 0 {
		opts.VOCExampleLimit = 3
	}

	s := &SummaryService{
		ingestor:     NewIngestor(opts.NormalizeText, logger),
		classifier:   NewClassifier(opts.Scorer, opts.MinClassifyChars),
		selector:     NewResolutionSelector(opts.DefaultTier, logger),
		renderer:     NewRenderer(),
		archive:      opts.Archive,
		uploadDir:    opts.UploadDir,
		exampleLimit: opts.VOCExampleLimit,
		logger:       logger,
	}
	s.kb.Store(models.EmptyKnowledgeBase())
	return s
}

// Snapshot returns the active knowledge base.
func (s *SummaryService) Snapshot() *models.KnowledgeBase {
	return s.kb.Load()
}

// Load reads src and publishes the result. On any failure the previous
// snapshot stays active.
func (s *SummaryService) Load(ctx context.Context, src Source) (IngestReport, error) {
	content, err := src.Read(ctx)
	if err != nil {
		s.logger.Error("Failed to read knowledge source", zap.String("source", src.Name()), zap.Error(err))
		return IngestReport{}, err
	}
	_, report, err := s.publish(src.Name(), content)
	return report, err
}

func (s *SummaryService) publish(name string, content []byte) (*models.KnowledgeBase, IngestReport, error) {
	kb, report, err := s.ingestor.Ingest(name, content)
	if err != nil {
		s.logger.Error("Knowledge base reload failed, keeping previous snapshot",
			zap.String("source", name),
			zap.Error(err),
		)
		return nil, report, err
	}
	s.swap(kb)
	return kb, report, nil
}

func (s *SummaryService) swap(kb *models.KnowledgeBase) {
	previous := s.kb.Swap(kb)
	s.logger.Info("Knowledge base swapped",
		zap.String("source", kb.Meta().Name),
		zap.Int("issue_types", kb.Len()),
		zap.Int("previous_issue_types", previous.Len()),
	)
}

// RestoreLatest loads the newest archived upload. It reports false when there
// is no archive or nothing archived yet.
func (s *SummaryService) RestoreLatest(ctx context.Context) (bool, error) {
	if s.archive == nil {
		return false, nil
	}
	latest, err := s.archive.Latest(ctx)
	if errors.Is(err, repository.ErrSourceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, unavailable("knowledge archive", err)
	}

	if _, _, err := s.publish(latest.FileName, latest.Content); err != nil {
		return false, err
	}
	s.logger.Info("Restored archived knowledge source",
		zap.String("id", latest.ID.String()),
		zap.Time("uploaded_at", latest.CreatedAt),
	)
	return true, nil
}

// Upload validates, stores and activates an uploaded sheet.
func (s *SummaryService) Upload(ctx context.Context, fileName string, content []byte) (models.KnowledgeInfo, error) {
	base := filepath.Base(strings.TrimSpace(fileName))
	ext := strings.ToLower(filepath.Ext(base))
	if ext != ".csv" && ext != ".xlsx" {
		return models.KnowledgeInfo{}, invalid("file", "only .csv or .xlsx files are supported")
	}
	if len(content) == 0 {
		return models.KnowledgeInfo{}, invalid("file", "file is empty")
	}

	name := base
	if s.uploadDir != "" {
		if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
			return models.KnowledgeInfo{}, fmt.Errorf("failed to create upload directory: %w", err)
		}
		name = filepath.Join(s.uploadDir, base)
	}

	// Compile before touching disk so a bad upload leaves nothing behind.
	kb, _, err := s.ingestor.Ingest(name, content)
	if err != nil {
		return models.KnowledgeInfo{}, err
	}
	if s.uploadDir != "" {
		if err := os.WriteFile(name, content, 0o644); err != nil {
			return models.KnowledgeInfo{}, fmt.Errorf("failed to save upload: %w", err)
		}
	}

	s.swap(kb)

	if s.archive != nil {
		src := &models.KnowledgeSource{
			ID:         uuid.New(),
			FileName:   base,
			Checksum:   kb.Meta().Checksum,
			Content:    content,
			IssueCount: kb.Len(),
			CreatedAt:  time.Now(),
		}
		if err := s.archive.Create(ctx, src); err != nil {
			s.logger.Warn("Failed to archive knowledge source", zap.String("file_name", base), zap.Error(err))
		}
	}

	return s.Info(), nil
}

// Generate renders the LOB summary for req.
func (s *SummaryService) Generate(req models.GenerationRequest) (*models.GenerationResult, error) {
	kb := s.kb.Load()

	stock, err := ParseStock(req.StockAvailable)
	if err != nil {
		return nil, err
	}
	if _, err := FormatFollowUp(req.FollowUpDate); err != nil {
		return nil, err
	}

	match := s.classifier.Classify(kb, req.VOC)
	issueType, ok := kb.Lookup(req.IssueType)
	switch {
	case ok:
	case match.Found:
		if strings.TrimSpace(req.IssueType) != "" {
			s.logger.Info("Issue type not in knowledge base, using classification",
				zap.String("requested", req.IssueType),
				zap.String("matched", match.IssueType),
				zap.Int("score", match.Score),
			)
		}
		issueType = match.IssueType
	default:
		issueType = ""
	}

	result := &models.GenerationResult{}
	if match.IssueType == issueType {
		result.Match = match
	}
	var fields models.ResolutionFields
	if issueType != "" {
		fields, err = s.selector.Select(kb, issueType, ResolutionFlags{
			Tier:     req.Tier,
			Stock:    stock,
			DPSMCall: strings.TrimSpace(req.DPSMCall),
		})
		if err != nil {
			return nil, err
		}
		rec, _ := kb.Record(issueType)
		result.MatchedIssueType = issueType
		result.SuggestedResolution = fields.TierText
		result.SOPDetails = fields.SOPDetails
		result.VOCExamples = limitExamples(rec.VOCExamples, s.exampleLimit)
	}

	result.Summary, err = s.renderer.Render(req, issueType, fields)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Classify exposes the classifier against the active snapshot.
func (s *SummaryService) Classify(text string) models.Match {
	return s.classifier.Classify(s.kb.Load(), text)
}

// Select exposes the resolution selector against the active snapshot.
func (s *SummaryService) Select(issueType string, flags ResolutionFlags) (models.ResolutionFields, error) {
	return s.selector.Select(s.kb.Load(), issueType, flags)
}

// IssueTypes returns the ordered issue types and the snapshot they came from.
func (s *SummaryService) IssueTypes() ([]string, *models.KnowledgeBase) {
	kb := s.kb.Load()
	return kb.IssueTypes(), kb
}

// Validate previews what an issue type implies without rendering a summary.
func (s *SummaryService) Validate(issueType string) models.ValidationResult {
	kb := s.kb.Load()
	name, ok := kb.Lookup(issueType)
	if !ok {
		return models.ValidationResult{
			IssueType:   issueType,
			Exists:      false,
			Suggestions: kb.IssueTypes(),
		}
	}
	rec, _ := kb.Record(name)
	return models.ValidationResult{
		IssueType:   name,
		Exists:      true,
		VOCExamples: rec.VOCExamples,
		Resolutions: rec.ResolutionMap(),
		SOPDetails:  rec.SOPDetails,
	}
}

func (s *SummaryService) Info() models.KnowledgeInfo {
	kb := s.kb.Load()
	meta := kb.Meta()
	status := "loaded"
	if kb.Len() == 0 {
		status = "empty"
	}
	return models.KnowledgeInfo{
		TotalIssueTypes: kb.Len(),
		Source:          meta.Name,
		Checksum:        meta.Checksum,
		LoadedAt:        meta.LoadedAt,
		IssueTypes:      kb.IssueTypes(),
		Status:          status,
	}
}

func limitExamples(examples []string, limit int) []string {
	if len(examples) > limit {
		examples = examples[:limit]
	}
	return examples
}
