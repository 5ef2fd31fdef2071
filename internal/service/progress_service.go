package service

import (
	"context"
	"encoding/json"

	"ai-deckgen-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IProgressPublisher interface {
	Publish(ctx context.Context, evt events.Event) error
}

type progressPublisher struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewProgressPublisher(pubSub *gochannel.GoChannel, topicName string) IProgressPublisher {
	return &progressPublisher{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

type progressEnvelope struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

func (p *progressPublisher) Publish(_ context.Context, evt events.Event) error {
	payload, err := json.Marshal(progressEnvelope{
		Type: evt.EventType(),
		Data: evt.Payload(),
	})
	if err != nil {
		return err
	}
	return p.pubSub.Publish(p.topicName, message.NewMessage(watermill.NewUUID(), payload))
}
