package contract

import "study-assistant-be/internal/entity"

// IStateRepository stores the process-wide study state.
type IStateRepository interface {
	Snapshot() entity.StudyState
	// SetSubject replaces the current subject and returns the previous one.
	SetSubject(subject string) string
}
