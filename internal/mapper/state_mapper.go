package mapper

import (
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
)

type StateMapper struct{}

func NewStateMapper() *StateMapper {
	return &StateMapper{}
}

func (m *StateMapper) ToHomeResponse(s entity.StudyState) *dto.HomeResponse {
	assignments := make([]dto.AssignmentResponse, 0, len(s.DueAssignments))
	for _, a := range s.DueAssignments {
		assignments = append(assignments, dto.AssignmentResponse{
			Title:   a.Title,
			DueDate: a.DueDate,
			Subject: a.Subject,
		})
	}

	return &dto.HomeResponse{
		Page:           "home",
		CurrentSubject: s.CurrentSubject,
		DailyStudyTime: int(s.DailyStudyTime.Minutes()),
		StreakCount:    s.StreakCount,
		DueAssignments: assignments,
	}
}
