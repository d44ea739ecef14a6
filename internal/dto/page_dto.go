package dto

// PageResponse stands in for a rendered template.
type PageResponse struct {
	Page   string `json:"page"`
	Notice string `json:"notice,omitempty"`
}

type MusicPageResponse struct {
	Page       string      `json:"page"`
	Notice     string      `json:"notice,omitempty"`
	LocalFiles []LocalFile `json:"local_files"`
}

type AssignmentResponse struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
	Subject string `json:"subject"`
}

type HomeResponse struct {
	Page           string               `json:"page"`
	CurrentSubject string               `json:"current_subject"`
	DailyStudyTime int                  `json:"daily_study_time"` // minutes
	StreakCount    int                  `json:"streak_count"`
	DueAssignments []AssignmentResponse `json:"due_assignments"`
}

type UpdateSubjectRequest struct {
	Subject string `form:"subject"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
}
