package events

import "time"

// Event is the contract for system events forwarded to the ops bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

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

// NewFeedbackSavedEvent marks a feedback record successfully mirrored
// to the shared log.
func NewFeedbackSavedEvent(sessionID string, queryText string) Event {
	return BaseEvent{
		Type: "FEEDBACK_SAVED",
		Data: map[string]interface{}{
			"session_id": sessionID,
			"query_text": queryText,
		},
		OccurredAt: time.Now(),
	}
}
