package events

import "time"

// Event type codes emitted by the assistant backend.
const (
	TypeDocumentIngested = "DOCUMENT_INGESTED"
	TypeHoursRefreshed   = "HOURS_REFRESHED"
)

// NewDocumentIngestedEvent signals that a corpus document was created or
// replaced and queued for embedding.
func NewDocumentIngestedEvent(documentId, title, source string) Event {
	return BaseEvent{
		Type: TypeDocumentIngested,
		Data: map[string]interface{}{
			"document_id": documentId,
			"title":       title,
			"source":      source,
		},
		OccurredAt: time.Now(),
	}
}

// NewHoursRefreshedEvent signals that live opening hours were fetched from an
// upstream provider and cached.
func NewHoursRefreshedEvent(facilityId, provider string) Event {
	return BaseEvent{
		Type: TypeHoursRefreshed,
		Data: map[string]interface{}{
			"facility_id": facilityId,
			"provider":    provider,
		},
		OccurredAt: time.Now(),
	}
}
