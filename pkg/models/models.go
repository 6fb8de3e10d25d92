// Package models defines the shared data types exchanged between the
// discovery and extraction stages.
package models

import "time"

// PaginationMode identifies the navigation scheme a listing page uses to
// reveal additional content.
type PaginationMode string

const (
	ModeUnknown       PaginationMode = "unknown"
	ModeYearSelect    PaginationMode = "year_select"
	ModeLoadMore      PaginationMode = "load_more"
	ModeNumberedPages PaginationMode = "numbered_pages"
	ModeSinglePage    PaginationMode = "single_page"
)

// ListingStatus reflects the lifecycle of a Navigator run.
type ListingStatus string

const (
	StatusActive    ListingStatus = "active"
	StatusExhausted ListingStatus = "exhausted"
	StatusFailed    ListingStatus = "failed"
)

// ListingState tracks one Navigator run over a press-release listing page.
// It is owned exclusively by that run and mutated only by the Navigator.
type ListingState struct {
	BaseURL         string
	Mode            PaginationMode
	VisitedPageKeys map[string]bool
	Status          ListingStatus

	// DiscoveredLinks holds normalized article URLs in discovery order.
	// linkSet mirrors it for O(1) dedup; the set is monotone non-decreasing.
	DiscoveredLinks []string
	linkSet         map[string]bool

	PagesVisited int
	Errs         []error
}

// NewListingState creates a ListingState in the ACTIVE status.
func NewListingState(baseURL string) *ListingState {
	return &ListingState{
		BaseURL:         baseURL,
		Mode:            ModeUnknown,
		VisitedPageKeys: make(map[string]bool),
		Status:          StatusActive,
		linkSet:         make(map[string]bool),
	}
}

// MergeLink adds a normalized URL to the discovered set.
// Returns true if the URL was new.
func (s *ListingState) MergeLink(normalized string) bool {
	if normalized == "" || s.linkSet[normalized] {
		return false
	}
	if s.linkSet == nil {
		s.linkSet = make(map[string]bool)
	}
	s.linkSet[normalized] = true
	s.DiscoveredLinks = append(s.DiscoveredLinks, normalized)
	return true
}

// HasLink reports whether a normalized URL has already been discovered.
func (s *ListingState) HasLink(normalized string) bool {
	return s.linkSet[normalized]
}

// LinkLabel classifies an anchor found on a listing page.
type LinkLabel string

const (
	LabelArticle     LinkLabel = "article"
	LabelBoilerplate LinkLabel = "boilerplate"
	LabelNavigation  LinkLabel = "navigation"
	LabelUnknown     LinkLabel = "unknown"
)

// LinkCandidate is one anchor under classification. Candidates are built per
// page scan and consumed immediately; they are never persisted.
type LinkCandidate struct {
	Href       string // absolute, normalized
	AnchorText string
	DOMDepth   int
	// Ancestry is the flexible tag-path of the anchor (e.g. "html > body >
	// div > ul > li"); anchors sharing an ancestry form a sibling group.
	Ancestry string
	// Context carries small hints from surrounding markup (parent classes
	// and ids) used by individual scoring features.
	Context []string
	// Hidden marks anchors concealed via display:none or a hidden class on
	// the anchor or a near ancestor.
	Hidden bool

	Score float64
	Label LinkLabel
}

// BlockKind distinguishes text-bearing content blocks.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockListItem  BlockKind = "list_item"
	BlockQuote     BlockKind = "quote"
)

// ContentBlock is one text-bearing unit of the article body, in source order.
type ContentBlock struct {
	Kind          BlockKind
	Text          string
	HTML          string // inner HTML, kept for downstream format conversion
	HeadingLevel  int    // 1..6 for headings, 0 otherwise
	IsBoilerplate bool
}

// TableBlock preserves a table's row/column structure verbatim.
type TableBlock struct {
	Rows [][]string
	// HeaderRow is the index of the header row, or -1 when the first row is
	// styled like the data rows.
	HeaderRow int
	// Position is the number of ContentBlocks preceding this table, which
	// pins the table to its original place in the document flow.
	Position int
}

// ArticleRecord is the immutable result of one extraction call.
type ArticleRecord struct {
	URL         string
	Title       string
	PublishedAt *time.Time
	Body        []ContentBlock
	Tables      []TableBlock

	// Optional page metadata recovered when present.
	Author   string
	Keywords []string
	Section  string

	// Confidence is 1.0 when no fallbacks were needed and degrades per
	// fallback level used across the title/date/body chains.
	Confidence float64
}

// Page is the raw result of one fetch: markup plus transport facts.
type Page struct {
	URL          string
	StatusCode   int
	HTML         string
	Rendered     bool
	FetchedAt    time.Time
	ResponseTime int64 // milliseconds
}
