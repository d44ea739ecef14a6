package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Activity event types emitted after a route's primary work succeeds.
const (
	TypeQuestionAnswered = "study.question_answered"
	TypeQuizGenerated    = "study.quiz_generated"
	TypeMusicUploaded    = "media.music_uploaded"
	TypeTranscriptSaved  = "media.transcript_saved"
	TypeSubjectUpdated   = "state.subject_updated"
)

// Event defines the contract for all system events.
type Event interface {
	// EventID is unique per occurrence.
	EventID() string

	// EventType returns the unique code for this event (e.g., "media.music_uploaded").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher is anything that can ship an event somewhere.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// New stamps a fresh id and the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string {
	return e.ID
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
