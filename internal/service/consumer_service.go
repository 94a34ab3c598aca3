package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"novel-recall-be/pkg/events"
	pkgNats "novel-recall-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains feedback-saved events off the in-process bus
// and forwards them to NATS for ops visibility. Forwarding failures
// never reach the user; the feedback itself was already saved.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pkgNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPub *pkgNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		natsPub:   natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal feedback event: %v", err)
		msg.Ack() // malformed messages are not retriable
		return
	}

	if cs.natsPub == nil {
		msg.Ack()
		return
	}

	event := events.BaseEvent{
		Type:       "FEEDBACK_SAVED",
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := cs.natsPub.Publish(ctx, event); err != nil {
		log.Printf("[WARN] Failed to forward feedback event to NATS: %v", err)
	}
	msg.Ack()
}
