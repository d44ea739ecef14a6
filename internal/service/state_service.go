package service

import (
	"context"

	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/mapper"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/contract"
	"study-assistant-be/pkg/events"
)

type IStateService interface {
	Home(ctx context.Context) *dto.HomeResponse
	// UpdateSubject replaces the current subject as-is. Any string is accepted.
	UpdateSubject(ctx context.Context, subject string)
}

type stateService struct {
	repo      contract.IStateRepository
	mapper    *mapper.StateMapper
	publisher IPublisherService
	logger    logger.ILogger
}

func NewStateService(repo contract.IStateRepository, publisher IPublisherService, log logger.ILogger) IStateService {
	return &stateService{
		repo:      repo,
		mapper:    mapper.NewStateMapper(),
		publisher: publisher,
		logger:    log,
	}
}

func (s *stateService) Home(ctx context.Context) *dto.HomeResponse {
	return s.mapper.ToHomeResponse(s.repo.Snapshot())
}

func (s *stateService) UpdateSubject(ctx context.Context, subject string) {
	prev := s.repo.SetSubject(subject)

	s.logger.Info("StateService", "Current subject updated", map[string]interface{}{
		"previous": prev,
		"subject":  subject,
	})
	publishActivity(ctx, s.publisher, s.logger, "StateService", events.TypeSubjectUpdated, map[string]interface{}{
		"previous": prev,
		"subject":  subject,
	})
}
