package execclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

type Client interface {
	GetCampaignsByAccountID(ctx context.Context, accountID string) ([]domain.Campaign, error)
	SubmitAction(ctx context.Context, action *domain.AutomationAction) (*ActionReceipt, error)
}

// ActionReceipt é a resposta do executor ao receber uma ação
type ActionReceipt struct {
	ActionID string `json:"action_id"`
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

type ExecutorClient struct {
	cfg    *config.Config
	client *resty.Client
}

// NewClient monta o cliente HTTP do serviço executor de campanhas com
// timeout e retries limitados com backoff exponencial
func NewClient(cfg *config.Config) Client {
	client := resty.New().
		SetBaseURL(cfg.Executor.URL).
		SetTimeout(time.Duration(cfg.Executor.TimeoutSeconds) * time.Second).
		SetRetryCount(cfg.Executor.MaxRetries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(8 * time.Second).
		SetHeader("Content-Type", "application/json")

	if cfg.Executor.APIKey != "" {
		client.SetAuthToken(cfg.Executor.APIKey)
	}

	return &ExecutorClient{
		cfg:    cfg,
		client: client,
	}
}

func (c *ExecutorClient) GetCampaignsByAccountID(ctx context.Context, accountID string) ([]domain.Campaign, error) {
	var campaigns []domain.Campaign

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&campaigns).
		SetPathParam("accountID", accountID).
		Get("/accounts/{accountID}/campaigns")
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar campanhas do executor")
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("executor retornou status %d: %s", resp.StatusCode(), resp.String())
	}

	return campaigns, nil
}

func (c *ExecutorClient) SubmitAction(ctx context.Context, action *domain.AutomationAction) (*ActionReceipt, error) {
	var receipt ActionReceipt

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(action).
		SetResult(&receipt).
		Post("/actions")
	if err != nil {
		return nil, errors.Wrap(err, "erro ao enviar ação ao executor")
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusAccepted {
		return nil, errors.Errorf("executor retornou status %d: %s", resp.StatusCode(), resp.String())
	}

	return &receipt, nil
}
