// Package campaignexec integra o motor ao colaborador externo que executa
// as mutações reais de lance/orçamento no marketplace. O motor só calcula
// intenções; quem aplica é esse serviço.
package campaignexec

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/integrator/campaignexec/execclient"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

type ExecutorIntegrator interface {
	ListCampaigns(ctx context.Context, accountID string) ([]domain.Campaign, error)
	ExecuteAction(ctx context.Context, action *domain.AutomationAction) (*execclient.ActionReceipt, error)
}

type Integrator struct {
	cfg    *config.Config
	Client execclient.Client
}

func New(cfg *config.Config, client execclient.Client) *Integrator {
	return &Integrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *Integrator) ListCampaigns(ctx context.Context, accountID string) ([]domain.Campaign, error) {
	campaigns, err := s.Client.GetCampaignsByAccountID(ctx, accountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("executor: failed to list campaigns")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"campaigns":  len(campaigns),
	}).Debug("executor: campaigns retrieved")

	return campaigns, nil
}

func (s *Integrator) ExecuteAction(ctx context.Context, action *domain.AutomationAction) (*execclient.ActionReceipt, error) {
	receipt, err := s.Client.SubmitAction(ctx, action)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"action_id":  action.ID,
			"account_id": action.AccountID,
			"target":     action.Target.Key(),
			"error":      err.Error(),
		}).Error("executor: failed to submit action")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"action_id": action.ID,
		"accepted":  receipt.Accepted,
	}).Debug("executor: action submitted")

	return receipt, nil
}
