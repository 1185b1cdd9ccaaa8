package service

import (
	"context"
	"encoding/json"

	"whatsapp-storefront-be/internal/dto"
	"whatsapp-storefront-be/internal/pkg/logger"
	"whatsapp-storefront-be/pkg/whatsapp"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IDeliveryService interface {
	Consume(ctx context.Context) error
}

// deliveryService drains the outbound reply topic and pushes each reply
// to the WhatsApp Cloud API. Send failures are logged and acked: the
// conversation moved on, retrying a stale reply would only confuse the user.
type deliveryService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sender    whatsapp.Sender
	log       logger.ILogger
}

func NewDeliveryService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sender whatsapp.Sender,
	log logger.ILogger,
) IDeliveryService {
	return &deliveryService{
		pubSub:    pubSub,
		topicName: topicName,
		sender:    sender,
		log:       log,
	}
}

func (s *deliveryService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *deliveryService) processMessage(ctx context.Context, msg *message.Message) {
	var reply dto.OutboundReply
	if err := json.Unmarshal(msg.Payload, &reply); err != nil {
		s.log.Error("delivery", "Failed to unmarshal outbound reply", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads would retry forever
		return
	}

	if err := s.sender.SendText(ctx, reply.PhoneNumberId, reply.To, reply.Body); err != nil {
		s.log.Error("delivery", "Failed to send WhatsApp message", map[string]interface{}{
			"error": err.Error(),
			"to":    reply.To,
		})
	}
	msg.Ack()
}
