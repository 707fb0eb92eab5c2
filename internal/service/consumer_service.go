package service

import (
	"context"

	"notegraph-be/internal/pkg/logger"
	"notegraph-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventSink receives relayed domain events. The NATS publisher and the websocket hub both qualify.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	sinks      []EventSink
	logger     logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topicName string, log logger.ILogger, sinks ...EventSink) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sinks:      sinks,
		logger:     log,
	}
}

// Consume relays the in-process topic to every sink until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Events are notifications; a failed relay is logged and never redelivered.
	defer msg.Ack()

	event, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Warn("EVENT_RELAY", "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	for _, sink := range cs.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			cs.logger.Warn("EVENT_RELAY", "Failed to relay event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
}
