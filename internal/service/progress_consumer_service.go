package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-deckgen-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IProgressConsumerService interface {
	Consume(ctx context.Context) error
}

// progressConsumerService drains the in-process progress topic and pushes
// each event to the websocket hub for the session it belongs to.
type progressConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
}

func NewProgressConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
) IProgressConsumerService {
	return &progressConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
	}
}

func (cs *progressConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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

func (cs *progressConsumerService) processMessage(msg *message.Message) {
	var envelope progressEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal progress event: %v", err)
		msg.Ack() // malformed, never retriable
		return
	}

	sessionID, _ := envelope.Data["session_id"].(string)
	if sessionID == "" {
		log.Printf("[ERROR] Progress event %s missing session_id", envelope.Type)
		msg.Ack()
		return
	}

	cs.hub.Send(sessionID, envelope.Type, envelope.Data)
	msg.Ack()
}
