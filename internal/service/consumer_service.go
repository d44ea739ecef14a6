package service

import (
	"context"
	"encoding/json"

	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ActivityBroadcaster fans an activity message out to live listeners.
type ActivityBroadcaster interface {
	Broadcast(msg dto.ActivityMessage)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	broadcaster ActivityBroadcaster
	logger      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	broadcaster ActivityBroadcaster,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		broadcaster: broadcaster,
		logger:      log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal activity event", map[string]interface{}{
			"message_uuid": msg.UUID,
			"error":        err.Error(),
		})
		msg.Ack() // a malformed payload will never parse, so don't redeliver
		return
	}

	cs.logger.Info("Consumer", "Activity event", map[string]interface{}{
		"event_id":   evt.ID,
		"event_type": evt.Type,
		"data":       evt.Data,
	})

	if cs.broadcaster != nil {
		cs.broadcaster.Broadcast(dto.ActivityMessage{
			Type:       evt.Type,
			EventID:    evt.ID,
			Data:       evt.Data,
			OccurredAt: evt.OccurredAt,
		})
	}

	msg.Ack()
}
