package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PAGE_STARTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the shared implementation used by the concrete constructors
// below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Progress event codes published while a deck renders.
const (
	TypePageStarted   = "PAGE_STARTED"
	TypePageCompleted = "PAGE_COMPLETED"
	TypePageFailed    = "PAGE_FAILED"
	TypeDeckCompleted = "DECK_COMPLETED"
)

func NewPageStarted(sessionID string, page int, theme string, total int) Event {
	return BaseEvent{
		Type: TypePageStarted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"page":       page,
			"theme":      theme,
			"total":      total,
		},
		OccurredAt: time.Now(),
	}
}

func NewPageCompleted(sessionID string, page int, theme, imagePath, retryInfo string) Event {
	data := map[string]interface{}{
		"session_id": sessionID,
		"page":       page,
		"theme":      theme,
		"image_path": imagePath,
	}
	if retryInfo != "" {
		data["retry_info"] = retryInfo
	}
	return BaseEvent{Type: TypePageCompleted, Data: data, OccurredAt: time.Now()}
}

func NewPageFailed(sessionID string, page int, theme, reason string) Event {
	return BaseEvent{
		Type: TypePageFailed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"page":       page,
			"theme":      theme,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewDeckCompleted(sessionID string, total, succeeded int) Event {
	return BaseEvent{
		Type: TypeDeckCompleted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"total":      total,
			"succeeded":  succeeded,
		},
		OccurredAt: time.Now(),
	}
}
