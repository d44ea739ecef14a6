package memory

import (
	"sync"

	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/repository/contract"
)

// StateRepository holds the process-wide study state behind a RWMutex.
// Readers always get a copy, so later updates never leak into a snapshot.
type StateRepository struct {
	mu    sync.RWMutex
	state entity.StudyState
}

func NewStateRepository(initial entity.StudyState) *StateRepository {
	return &StateRepository{state: clone(initial)}
}

func (r *StateRepository) Snapshot() entity.StudyState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.state)
}

// SetSubject replaces the current subject and returns the previous one.
func (r *StateRepository) SetSubject(subject string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.state.CurrentSubject
	r.state.CurrentSubject = subject
	return prev
}

func clone(s entity.StudyState) entity.StudyState {
	out := s
	out.DueAssignments = append([]entity.Assignment(nil), s.DueAssignments...)
	return out
}

var _ contract.IStateRepository = (*StateRepository)(nil)
