package dto

type StudyRequest struct {
	Message string `form:"message" json:"message" validate:"notblank" msg:"Please enter a question"`
}

type StudyResponse struct {
	Response string `json:"response"`
}

type QuizRequest struct {
	Material string `form:"material" json:"material" validate:"notblank" msg:"Please enter study material"`
}

type QuizResponse struct {
	Quiz string `json:"quiz"`
}
