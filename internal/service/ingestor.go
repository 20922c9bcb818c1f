package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"lob-summary/internal/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	maxIssueTypeLen  = 100
	headerScanLimit  = 10
	issueColumnLabel = "issue type"
)

var (
	issueHeaders   = map[string]bool{"issue type": true, "issue_type": true, "issue": true, "nodes": true}
	ignoredHeaders = map[string]bool{"#": true, "no": true, "s.no": true, "s no": true, "sno": true, "sr no": true, "sr. no": true, "sl no": true}

	vocMarker  = regexp.MustCompile(`(?i)\bvoc\s*:\s*`)
	vocStopper = regexp.MustCompile(`\n\s*\n|\n[A-Z]`)
)

// IngestReport counts what happened to the sheet rows during one load.
type IngestReport struct {
	Rows      int
	Records   int
	Skipped   int
	Malformed int
}

// Ingestor compiles knowledge sheets into KnowledgeBase snapshots.
type Ingestor struct {
	normalize bool
	now       func() time.Time
	logger    *zap.Logger
}

func NewIngestor(normalize bool, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		normalize: normalize,
		now:       time.Now,
		logger:    logger,
	}
}

// Ingest parses content read from source name. The file extension selects
// the format: .xlsx goes through excelize, everything else is CSV.
func (i *Ingestor) Ingest(name string, content []byte) (*models.KnowledgeBase, IngestReport, error) {
	var report IngestReport

	rows, malformed, err := i.readRows(name, content)
	if err != nil {
		return nil, report, unavailable(name, err)
	}
	report.Malformed += malformed

	headerAt, schema, ok := findHeader(rows, i.normalize)
	if !ok {
		return nil, report, unavailable(name, fmt.Errorf("no %q column in the first %d rows", issueColumnLabel, headerScanLimit))
	}

	builder := newRecordBuilder()
	for n, row := range rows[headerAt+1:] {
		report.Rows++
		rowNum := headerAt + n + 2

		rec, err := i.parseRow(schema, row)
		if err != nil {
			if errors.Is(err, errEmptyIssue) {
				report.Skipped++
				continue
			}
			report.Malformed++
			i.logger.Warn("Skipping knowledge row",
				zap.String("source", name),
				zap.Int("row", rowNum),
				zap.Error(err),
			)
			continue
		}
		builder.add(rec)
	}

	records := builder.build(schema.tiers)
	report.Records = len(records)
	if len(records) == 0 {
		return nil, report, unavailable(name, errors.New("no issue types found"))
	}

	sum := sha256.Sum256(content)
	kb := models.NewKnowledgeBase(records, schema.tiers, models.SourceMeta{
		Name:     name,
		Checksum: hex.EncodeToString(sum[:]),
		LoadedAt: i.now(),
	})

	i.logger.Info("Knowledge base compiled",
		zap.String("source", name),
		zap.Int("rows", report.Rows),
		zap.Int("issue_types", report.Records),
		zap.Int("skipped", report.Skipped),
		zap.Int("malformed", report.Malformed),
		zap.Int("tiers", len(schema.tiers)),
	)

	return kb, report, nil
}

func (i *Ingestor) readRows(name string, content []byte) ([][]string, int, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		rows, err := readWorkbook(content)
		return rows, 0, err
	}
	return i.readCSV(name, content)
}

func readWorkbook(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func (i *Ingestor) readCSV(name string, content []byte) ([][]string, int, error) {
	r := csv.NewReader(strings.NewReader(decodeContent(content)))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var (
		rows      [][]string
		malformed int
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				malformed++
				i.logger.Warn("Skipping unparsable CSV line",
					zap.String("source", name),
					zap.Int("line", parseErr.Line),
					zap.Error(fmt.Errorf("%w: %v", ErrMalformedRow, err)),
				)
				continue
			}
			return nil, malformed, err
		}
		rows = append(rows, row)
	}
	return rows, malformed, nil
}

type sheetSchema struct {
	issueCol int
	sopCol   int
	vocCols  []int
	tierCols []int
	tierOf   map[int]models.Tier
	tiers    []models.Tier
}

func normalizeHeader(h string) string {
	return strings.ToLower(collapseSpace(h))
}

// findHeader locates the header row; title rows above it are ignored.
func findHeader(rows [][]string, normalize bool) (int, sheetSchema, bool) {
	for n, row := range rows {
		if n >= headerScanLimit {
			break
		}
		if schema, ok := detectSchema(row, normalize); ok {
			return n, schema, true
		}
	}
	return 0, sheetSchema{}, false
}

func detectSchema(header []string, normalize bool) (sheetSchema, bool) {
	schema := sheetSchema{issueCol: -1, sopCol: -1, tierOf: make(map[int]models.Tier)}
	seenTier := make(map[string]bool)

	for col, raw := range header {
		label := cleanCell(raw, normalize)
		key := normalizeHeader(label)
		switch {
		case key == "" || ignoredHeaders[key]:
		case issueHeaders[key]:
			if schema.issueCol < 0 {
				schema.issueCol = col
			}
		case strings.Contains(key, "voc"):
			schema.vocCols = append(schema.vocCols, col)
		case strings.Contains(key, "sop") || strings.Contains(key, "procedure"):
			if schema.sopCol < 0 {
				schema.sopCol = col
			}
		default:
			tier := models.Tier(collapseSpace(label))
			schema.tierCols = append(schema.tierCols, col)
			schema.tierOf[col] = tier
			if !seenTier[key] {
				seenTier[key] = true
				schema.tiers = append(schema.tiers, tier)
			}
		}
	}

	return schema, schema.issueCol >= 0
}

var errEmptyIssue = errors.New("empty issue type")

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	if strings.EqualFold(strings.TrimSpace(row[col]), "nan") {
		return ""
	}
	return row[col]
}

func (i *Ingestor) parseRow(schema sheetSchema, row []string) (models.IssueRecord, error) {
	raw := cleanCell(cellAt(row, schema.issueCol), i.normalize)
	if raw == "" {
		return models.IssueRecord{}, errEmptyIssue
	}

	issueType := issueTypeFrom(raw)
	if issueType == "" {
		return models.IssueRecord{}, errEmptyIssue
	}
	if utf8.RuneCountInString(issueType) > maxIssueTypeLen {
		return models.IssueRecord{}, fmt.Errorf("%w: issue type longer than %d characters", ErrMalformedRow, maxIssueTypeLen)
	}

	rec := models.IssueRecord{IssueType: issueType}

	for _, col := range schema.vocCols {
		rec.VOCExamples = append(rec.VOCExamples, splitVOC(cleanCell(cellAt(row, col), i.normalize))...)
	}

	for _, col := range schema.tierCols {
		text := cleanCell(cellAt(row, col), i.normalize)
		if text == "" {
			continue
		}
		rec.Resolutions = append(rec.Resolutions, models.TierResolution{Tier: schema.tierOf[col], Text: text})
	}

	if schema.sopCol >= 0 {
		rec.SOPDetails = cleanCell(cellAt(row, schema.sopCol), i.normalize)
	} else {
		rec.SOPDetails = raw
	}

	return rec, nil
}

func issueTypeFrom(cell string) string {
	for _, line := range strings.Split(cell, "\n") {
		line = collapseSpace(stripBullet(line))
		line = strings.TrimSpace(strings.TrimRight(line, ":"))
		if line != "" {
			return line
		}
	}
	return ""
}

// splitVOC turns one VOC cell into example statements.
func splitVOC(cell string) []string {
	if cell == "" {
		return nil
	}

	var parts []string
	switch {
	case vocMarker.MatchString(cell):
		segments := vocMarker.Split(cell, -1)
		for _, seg := range segments[1:] {
			if loc := vocStopper.FindStringIndex(seg); loc != nil {
				seg = seg[:loc[0]]
			}
			parts = append(parts, seg)
		}
	case isBulletList(cell):
		parts = strings.Split(cell, "\n")
	default:
		parts = []string{cell}
	}

	var examples []string
	for _, p := range parts {
		p = collapseSpace(stripBullet(p))
		p = strings.Trim(p, "\"“”'")
		p = strings.TrimSpace(p)
		if p != "" {
			examples = append(examples, p)
		}
	}
	return examples
}

func isBulletList(cell string) bool {
	lines := strings.Split(cell, "\n")
	if len(lines) < 2 {
		return false
	}
	for _, line := range lines {
		if hasBullet(line) {
			return true
		}
	}
	return false
}

type recordDraft struct {
	rec         models.IssueRecord
	examples    map[string]bool
	resolutions map[string]string
	sops        []string
}

// recordBuilder merges rows that share an issue type (compared
// case-insensitively, first spelling wins).
type recordBuilder struct {
	order  []string
	drafts map[string]*recordDraft
}

func newRecordBuilder() *recordBuilder {
	return &recordBuilder{drafts: make(map[string]*recordDraft)}
}

func (b *recordBuilder) add(rec models.IssueRecord) {
	key := strings.ToLower(rec.IssueType)
	d, ok := b.drafts[key]
	if !ok {
		d = &recordDraft{
			rec:         models.IssueRecord{IssueType: rec.IssueType},
			examples:    make(map[string]bool),
			resolutions: make(map[string]string),
		}
		b.drafts[key] = d
		b.order = append(b.order, key)
	}

	for _, ex := range rec.VOCExamples {
		k := strings.ToLower(ex)
		if d.examples[k] {
			continue
		}
		d.examples[k] = true
		d.rec.VOCExamples = append(d.rec.VOCExamples, ex)
	}

	for _, res := range rec.Resolutions {
		d.resolutions[normalizeHeader(string(res.Tier))] = res.Text
	}

	if rec.SOPDetails != "" {
		for _, existing := range d.sops {
			if existing == rec.SOPDetails {
				return
			}
		}
		d.sops = append(d.sops, rec.SOPDetails)
	}
}

func (b *recordBuilder) build(tiers []models.Tier) []models.IssueRecord {
	records := make([]models.IssueRecord, 0, len(b.order))
	for _, key := range b.order {
		d := b.drafts[key]
		rec := d.rec
		for _, tier := range tiers {
			if text, ok := d.resolutions[normalizeHeader(string(tier))]; ok {
				rec.Resolutions = append(rec.Resolutions, models.TierResolution{Tier: tier, Text: text})
			}
		}
		rec.SOPDetails = strings.Join(d.sops, "\n")
		records = append(records, rec)
	}
	return records
}
