package notifying

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

// WebhookChannel entrega o evento de alerta como JSON em um endpoint
// configurado pelo operador
type WebhookChannel struct {
	client *resty.Client
	url    string
}

func NewWebhookChannel(cfg *config.Config) *WebhookChannel {
	return &WebhookChannel{
		client: resty.New().
			SetTimeout(time.Duration(cfg.Notification.TimeoutSeconds) * time.Second).
			SetHeader("Content-Type", "application/json"),
		url: cfg.Notification.WebhookURL,
	}
}

func (c *WebhookChannel) Type() domain.ChannelType {
	return domain.ChannelWebhook
}

func (c *WebhookChannel) Send(ctx context.Context, event *domain.AlertEvent) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("erro ao enviar webhook: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook retornou status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
