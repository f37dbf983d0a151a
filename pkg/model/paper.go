// Package model defines the records exchanged with the paper catalog API.
package model

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// PublishedLayout is the date layout used by the catalog for published dates.
const PublishedLayout = "2006-01-02"

// Paper is a single catalog entry. List responses carry SummaryShort only;
// detail responses carry the abstract and PDF link as well.
type Paper struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Abstract      string `json:"abstract,omitempty"`
	PDFURL        string `json:"pdf_url,omitempty"`
	Source        string `json:"source,omitempty"`
	PublishedDate string `json:"published_date"`
	SummaryShort  string `json:"summary_short,omitempty"`
}

// Published parses PublishedDate. Unparsable or empty dates return the zero time.
func (p Paper) Published() time.Time {
	s := strings.TrimSpace(p.PublishedDate)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(PublishedLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// Fact is a typed key/value annotation, e.g. {Type: "Method", Value: "Transformer"}.
type Fact struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Entity is an extracted term with its category label.
type Entity struct {
	Entity string `json:"entity"`
	Type   string `json:"type"`
}

// Summaries holds the short and long summary blocks of a paper.
type Summaries struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

// PaperPage is one page of the paginated listing.
type PaperPage struct {
	Papers      []Paper `json:"papers"`
	Page        int     `json:"page"`
	PerPage     int     `json:"per_page"`
	TotalPapers int     `json:"total_papers"`
	TotalPages  int     `json:"total_pages"`
}

// PaperDetail is the full record for a single paper.
//
// Mindmap is kept raw: the catalog stores it either as a JSON object or as a
// JSON string holding serialized JSON, and it may be null.
type PaperDetail struct {
	ID        int             `json:"id"`
	Paper     Paper           `json:"paper"`
	Summaries Summaries       `json:"summaries"`
	Facts     []Fact          `json:"facts"`
	Entities  []Entity        `json:"entities"`
	Mindmap   json.RawMessage `json:"mindmap_json"`
}

// HasMindmap reports whether the detail carries a non-null mindmap payload.
func (d PaperDetail) HasMindmap() bool {
	s := strings.TrimSpace(string(d.Mindmap))
	return s != "" && s != "null" && s != `""`
}

// FetchResult is the response of the upstream ingest trigger.
type FetchResult struct {
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}
