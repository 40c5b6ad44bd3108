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

// EmailChannel entrega alertas por email via gateway HTTP de email.
// Retries ficam a cargo do despachante; o canal faz uma tentativa só.
type EmailChannel struct {
	client *resty.Client
	from   string
	to     string
}

func NewEmailChannel(cfg *config.Config) *EmailChannel {
	client := resty.New().
		SetBaseURL(cfg.Notification.EmailGatewayURL).
		SetTimeout(time.Duration(cfg.Notification.TimeoutSeconds) * time.Second).
		SetHeader("Content-Type", "application/json")

	if cfg.Notification.EmailGatewayKey != "" {
		client.SetAuthToken(cfg.Notification.EmailGatewayKey)
	}

	return &EmailChannel{
		client: client,
		from:   cfg.Notification.EmailFrom,
		to:     cfg.Notification.EmailTo,
	}
}

func (c *EmailChannel) Type() domain.ChannelType {
	return domain.ChannelEmail
}

func (c *EmailChannel) Send(ctx context.Context, event *domain.AlertEvent) error {
	payload := map[string]interface{}{
		"from":    c.from,
		"to":      c.to,
		"subject": fmt.Sprintf("[%s] Alerta de %s na conta %s", event.Severity, event.Metric, event.AccountID),
		"text":    event.Message,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("erro ao enviar email: %w", err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("gateway de email retornou status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
