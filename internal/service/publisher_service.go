package service

import (
	"context"
	"encoding/json"
	"fmt"

	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const ActivityTopic = "study_activity"

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	external  events.Publisher
}

// NewPublisherService publishes on the in-process bus and, when external is
// not nil, forwards the same event to it (NATS).
func NewPublisherService(topicName string, publisher message.Publisher, external events.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		external:  external,
	}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(events.BaseEvent{
		ID:         event.EventID(),
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())

	if err := s.publisher.Publish(s.topicName, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", s.topicName, err)
	}

	if s.external != nil {
		if err := s.external.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// publishActivity emits an activity event after a route's work is done.
// Failures are logged only; they never change the route's outcome.
func publishActivity(ctx context.Context, pub IPublisherService, log logger.ILogger, module, eventType string, data map[string]interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn(module, "Failed to publish activity event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
