package dto

import "time"

// ActivityMessage is what /ws/activity clients receive for each event.
type ActivityMessage struct {
	Type       string                 `json:"type"`
	EventID    string                 `json:"event_id"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
