package dto

import "github.com/google/uuid"

type AskRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
}

type SourceResponse struct {
	Title   string  `json:"title,omitempty"`
	URL     string  `json:"url,omitempty"`
	Source  string  `json:"source"`
	Library string  `json:"library,omitempty"`
	Score   float32 `json:"score"`
}

type AskResponse struct {
	Answer  string           `json:"answer"`
	Sources []SourceResponse `json:"sources"`
}

// PublishEmbedDocumentMessage is the payload queued for the embedding
// consumer after a document is created or replaced.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
