package service

import (
	"context"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/llm"
)

type IAssistantService interface {
	// Generate sends one prompt to the selected model. It never probes or
	// retries.
	Generate(ctx context.Context, prompt string) (string, error)
	Ask(ctx context.Context, req *dto.StudyRequest) (*dto.StudyResponse, error)
	Quiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
	// Model is the selected model name, or "" when none answered at startup.
	Model() string
}

type assistantService struct {
	handle    *llm.Handle
	publisher IPublisherService
	logger    logger.ILogger
}

// NewAssistantService wraps the handle chosen at startup. A nil handle means
// no model answered the probe, and every call reports the service as
// unavailable.
func NewAssistantService(handle *llm.Handle, publisher IPublisherService, log logger.ILogger) IAssistantService {
	return &assistantService{
		handle:    handle,
		publisher: publisher,
		logger:    log,
	}
}

func (s *assistantService) Model() string {
	if s.handle == nil {
		return ""
	}
	return s.handle.Model
}

func (s *assistantService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.handle == nil || s.handle.Provider == nil {
		return "", apperror.ProviderUnavailable()
	}

	text, err := s.handle.Provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("AssistantService", "Generation failed", map[string]interface{}{
			"model": s.handle.Model,
			"error": err.Error(),
		})
		return "", apperror.Provider(err)
	}
	return text, nil
}

func (s *assistantService) Ask(ctx context.Context, req *dto.StudyRequest) (*dto.StudyResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	text, err := s.Generate(ctx, constant.StudyAssistantPrompt(req.Message))
	if err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisher, s.logger, "AssistantService", events.TypeQuestionAnswered, map[string]interface{}{
		"model":           s.Model(),
		"question_length": len(req.Message),
	})

	return &dto.StudyResponse{Response: text}, nil
}

func (s *assistantService) Quiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	text, err := s.Generate(ctx, constant.QuizPrompt(req.Material))
	if err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisher, s.logger, "AssistantService", events.TypeQuizGenerated, map[string]interface{}{
		"model":           s.Model(),
		"material_length": len(req.Material),
	})

	return &dto.QuizResponse{Quiz: text}, nil
}
