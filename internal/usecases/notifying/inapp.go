package notifying

import (
	"context"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/messaging"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

// InAppChannel publica o cartão de notificação no barramento; o dashboard
// consome o tópico e materializa o cartão para o usuário
type InAppChannel struct {
	bus messaging.Bus
}

func NewInAppChannel(bus messaging.Bus) *InAppChannel {
	return &InAppChannel{bus: bus}
}

func (c *InAppChannel) Type() domain.ChannelType {
	return domain.ChannelInApp
}

func (c *InAppChannel) Send(ctx context.Context, event *domain.AlertEvent) error {
	msg := &messaging.Message{
		Type:      messaging.MessageTypeAlert,
		Timestamp: event.CreatedAt,
		Details: map[string]interface{}{
			"event_id":   event.ID,
			"account_id": event.AccountID,
			"severity":   string(event.Severity),
			"message":    event.Message,
		},
	}

	return c.bus.Publish(ctx, messaging.TopicNotifications, msg)
}
