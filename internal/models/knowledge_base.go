package models

import (
	"slices"
	"strings"
	"time"
)

// Tier names a resolution column of the knowledge sheet, e.g. "Gold".
type Tier string

type TierResolution struct {
	Tier Tier
	Text string
}

type IssueRecord struct {
	IssueType   string
	VOCExamples []string
	Resolutions []TierResolution // tier declaration order, non-empty text only
	SOPDetails  string
}

// Resolution returns the text stored for tier, matched case-insensitively.
func (r IssueRecord) Resolution(tier Tier) (string, bool) {
	for _, res := range r.Resolutions {
		if strings.EqualFold(string(res.Tier), string(tier)) {
			return res.Text, true
		}
	}
	return "", false
}

// ResolutionMap flattens Resolutions for JSON output.
func (r IssueRecord) ResolutionMap() map[string]string {
	out := make(map[string]string, len(r.Resolutions))
	for _, res := range r.Resolutions {
		out[string(res.Tier)] = res.Text
	}
	return out
}

func (r IssueRecord) clone() IssueRecord {
	r.VOCExamples = slices.Clone(r.VOCExamples)
	r.Resolutions = slices.Clone(r.Resolutions)
	return r
}

// SourceMeta describes where a knowledge base snapshot came from.
type SourceMeta struct {
	Name     string
	Checksum string
	LoadedAt time.Time
}

// KnowledgeBase is an immutable snapshot of the issue sheet. It is safe for
// concurrent readers; a reload builds a new value instead of mutating this one.
type KnowledgeBase struct {
	meta    SourceMeta
	tiers   []Tier
	order   []string
	records map[string]IssueRecord
	folded  map[string]string   // lower(issue type) -> issue type
	lowered map[string][]string // issue type -> lower-cased VOC examples
}

// NewKnowledgeBase builds a snapshot from records in sheet order. Records must
// have unique issue types.
func NewKnowledgeBase(records []IssueRecord, tiers []Tier, meta SourceMeta) *KnowledgeBase {
	kb := &KnowledgeBase{
		meta:    meta,
		tiers:   slices.Clone(tiers),
		order:   make([]string, 0, len(records)),
		records: make(map[string]IssueRecord, len(records)),
		folded:  make(map[string]string, len(records)),
		lowered: make(map[string][]string, len(records)),
	}
	for _, rec := range records {
		rec = rec.clone()
		kb.order = append(kb.order, rec.IssueType)
		kb.records[rec.IssueType] = rec

		key := strings.ToLower(rec.IssueType)
		if _, ok := kb.folded[key]; !ok {
			kb.folded[key] = rec.IssueType
		}

		lowered := make([]string, len(rec.VOCExamples))
		for i, ex := range rec.VOCExamples {
			lowered[i] = strings.ToLower(ex)
		}
		kb.lowered[rec.IssueType] = lowered
	}
	return kb
}

// EmptyKnowledgeBase is the snapshot served before any sheet loaded.
func EmptyKnowledgeBase() *KnowledgeBase {
	return NewKnowledgeBase(nil, nil, SourceMeta{})
}

func (kb *KnowledgeBase) Meta() SourceMeta { return kb.meta }

func (kb *KnowledgeBase) Len() int { return len(kb.order) }

func (kb *KnowledgeBase) Tiers() []Tier { return slices.Clone(kb.tiers) }

// IssueTypes returns the issue types in sheet order.
func (kb *KnowledgeBase) IssueTypes() []string { return slices.Clone(kb.order) }

// Lookup resolves name to its stored issue type, exact match first and then
// case-insensitively.
func (kb *KnowledgeBase) Lookup(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if _, ok := kb.records[name]; ok {
		return name, true
	}
	canonical, ok := kb.folded[strings.ToLower(name)]
	return canonical, ok
}

// Record returns a copy of the record for issueType (exact key).
func (kb *KnowledgeBase) Record(issueType string) (IssueRecord, bool) {
	rec, ok := kb.records[issueType]
	if !ok {
		return IssueRecord{}, false
	}
	return rec.clone(), true
}

// Records returns copies of all records in sheet order.
func (kb *KnowledgeBase) Records() []IssueRecord {
	out := make([]IssueRecord, 0, len(kb.order))
	for _, name := range kb.order {
		out = append(out, kb.records[name].clone())
	}
	return out
}

// EachExample calls fn for every VOC example in sheet order, passing the
// original and lower-cased text. Iteration stops when fn returns false.
func (kb *KnowledgeBase) EachExample(fn func(issueType, example, lowered string) bool) {
	for _, name := range kb.order {
		examples := kb.records[name].VOCExamples
		lowered := kb.lowered[name]
		for i := range examples {
			if !fn(name, examples[i], lowered[i]) {
				return
			}
		}
	}
}
