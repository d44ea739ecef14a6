package entity

import "time"

type Assignment struct {
	Title   string
	DueDate string
	Subject string
}

// StudyState is the single-tenant dashboard shown on the home page.
type StudyState struct {
	CurrentSubject string
	DailyStudyTime time.Duration
	StreakCount    int
	DueAssignments []Assignment
}

// DefaultStudyState is the demo state a fresh process starts with.
func DefaultStudyState() StudyState {
	return StudyState{
		CurrentSubject: "General",
		DailyStudyTime: 0,
		StreakCount:    7,
		DueAssignments: []Assignment{
			{Title: "Math Assignment", DueDate: "2024-01-15", Subject: "Mathematics"},
			{Title: "Science Project", DueDate: "2024-01-18", Subject: "Science"},
			{Title: "History Essay", DueDate: "2024-01-20", Subject: "History"},
		},
	}
}
