package domain

import (
	"strings"
	"time"
)

// Category classifies a quote.
type Category string

const (
	CategoryInsight   Category = "insight"
	CategoryWisdom    Category = "wisdom"
	CategoryHumor     Category = "humor"
	CategoryTechnical Category = "technical"
	CategoryStory     Category = "story"
)

// AllCategories lists the accepted categories in display order.
var AllCategories = []Category{
	CategoryInsight, CategoryWisdom, CategoryHumor, CategoryTechnical, CategoryStory,
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryInsight, CategoryWisdom, CategoryHumor, CategoryTechnical, CategoryStory:
		return true
	}
	return false
}

// Extract is a single quote taken from a source. Extracts are never deleted.
type Extract struct {
	ID          int64
	SourceID    int64
	Quote       string
	PageHint    *int
	Category    Category
	Context     *string
	ContentHash string
	ShowCount   int
	LastShownAt *time.Time
	Bookmarked  bool
	Dismissed   bool
	CreatedAt   time.Time
}

// IsEligible reports whether the extract may appear in a feed built at now,
// using the default feed policy.
func (e *Extract) IsEligible(now time.Time) bool {
	return DefaultFeedPolicy().IsEligible(e, now)
}

// ExtractWithSource is an extract joined with its source's display fields.
type ExtractWithSource struct {
	Extract
	SourceTitle  string
	SourceAuthor *string
}

// CandidateQuote is one quote proposed by the document analyzer, before
// hashing and deduplication.
type CandidateQuote struct {
	Quote    string
	PageHint *int
	Category Category
	Context  *string
}

// Validate checks a candidate against the quote schema.
func (q CandidateQuote) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(q.Quote) == "" {
		errs = append(errs, FieldError{Field: "quote", Message: "required"})
	}
	if !q.Category.IsValid() {
		errs = append(errs, FieldError{Field: "category", Message: "must be one of insight, wisdom, humor, technical, story"})
	}
	if q.PageHint != nil && *q.PageHint < 0 {
		errs = append(errs, FieldError{Field: "page_hint", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// NewExtract is the insert payload for a deduplicated quote.
type NewExtract struct {
	SourceID    int64
	Quote       string
	PageHint    *int
	Category    Category
	Context     *string
	ContentHash string
}

// ExtractionResult summarizes one extraction run.
type ExtractionResult struct {
	Extracted  int
	Duplicates int
	Total      int
}
