package store

// Known values for Metadata.Source. Documents tagged with a live-derived
// source get a freshness bonus during reranking.
const (
	SourceLiveHours   = "module_horaires"
	SourceHours       = "hours"
	SourceAllPages    = "all_pages"
	SourceGeneralInfo = "general_info"
	SourceContact     = "contact"
	SourceServices    = "services"
)

// Metadata carries the provenance of a document. Source is always set;
// the other fields depend on where the document came from.
type Metadata struct {
	Source  string `json:"source"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url,omitempty"`
	Library string `json:"library,omitempty"`
}

// Document is the uniform retrieval unit for the RAG system. Corpus chunks,
// vector search hits and synthesized live-data facts all flow through this
// shape so the answer assembler has a single input format.
type Document struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Score    float32  `json:"score"`
	Metadata Metadata `json:"metadata"`
}

// IsLive reports whether the document wraps a live-fetched fact rather than
// static corpus text.
func (d Document) IsLive() bool {
	return d.Metadata.Source == SourceLiveHours || d.Metadata.Source == SourceHours
}
