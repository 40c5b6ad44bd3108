// Package automation implementa o coordenador de ações: traduz parâmetros
// efetivos de estratégia e alertas disparados em propostas de ajuste de
// lance/orçamento/pausa enviadas ao executor externo, com exclusividade por
// (conta, alvo) e checagem de segurança de margem antes de qualquer aumento.
package automation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/integrator/campaignexec"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/messaging"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/margin"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/strategy"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/utils"
)

// Proposal descreve o gatilho de uma proposta de ação
type Proposal struct {
	Source domain.ActionTrigger
	// Alert é o evento disparado quando Source == TriggerAlert
	Alert *domain.AlertEvent
	// Margin traz os dados de margem do produto do alvo, quando o
	// chamador os conhece; sem eles a checagem de margem é pulada
	Margin *domain.MarginValidationInput
}

type Coordinator interface {
	Propose(ctx context.Context, accountID string, target domain.ActionTarget, proposal *Proposal) (*domain.AutomationAction, error)
	ProposeForAccount(ctx context.Context, accountID string) ([]*domain.AutomationAction, error)
	HandleExecutorCallback(ctx context.Context, actionID string, success bool, message string) error
	ListActions(ctx context.Context, accountID string) ([]*domain.AutomationAction, error)
	Start(ctx context.Context) error
	Wait()
}

type Service struct {
	actionRepo      repository.ActionRepository
	strategyService strategy.StrategyService
	marginValidator margin.Validator
	executor        campaignexec.ExecutorIntegrator
	bus             messaging.Bus
	dispatchTimeout time.Duration

	wg sync.WaitGroup
}

func NewService(
	actionRepo repository.ActionRepository,
	strategyService strategy.StrategyService,
	marginValidator margin.Validator,
	executor campaignexec.ExecutorIntegrator,
	bus messaging.Bus,
	cfg *config.Config,
) *Service {
	return &Service{
		actionRepo:      actionRepo,
		strategyService: strategyService,
		marginValidator: marginValidator,
		executor:        executor,
		bus:             bus,
		dispatchTimeout: time.Duration(cfg.Executor.TimeoutSeconds) * time.Second,
	}
}

// Propose calcula a ação pretendida, aplica a checagem de margem e grava a
// ação como pending. A exclusividade por (conta, alvo) é atômica no
// repositório: se já há ação em andamento a proposta é rejeitada com
// ErrActionInFlight, nunca enfileirada em silêncio.
func (s *Service) Propose(ctx context.Context, accountID string, target domain.ActionTarget, proposal *Proposal) (*domain.AutomationAction, error) {
	if accountID == "" {
		return nil, ErrAccountRequired
	}
	if target.ID == "" || target.Kind == "" {
		return nil, ErrTargetRequired
	}

	actionType, computedValue, reason, err := s.computeAction(ctx, accountID, proposal)
	if err != nil {
		return nil, err
	}

	// Aumento de lance/orçamento só passa se a margem não estiver em risco
	if computedValue > 0 && proposal.Margin != nil {
		result, err := s.marginValidator.Validate(*proposal.Margin)
		if err != nil {
			return nil, err
		}

		if result.Status == domain.MarginStatusDanger {
			log.ForContext(ctx).WithFields(log.Fields{
				"account_id":       accountID,
				"target":           target.Key(),
				"remaining_margin": result.RemainingMargin,
			}).Warn("automation: margin in danger, proposing pause instead of increase")

			actionType = domain.ActionPause
			computedValue = 0
			reason = "aumento recusado: margem restante abaixo do limite de segurança"
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	action := &domain.AutomationAction{
		ID:            id,
		AccountID:     accountID,
		Target:        target,
		ActionType:    actionType,
		ComputedValue: computedValue,
		TriggeredBy:   proposal.Source,
		Reason:        reason,
		Status:        domain.ActionStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.actionRepo.Create(action); err != nil {
		if errors.Is(err, repository.ErrInFlightConflict) {
			return nil, ErrActionInFlight
		}
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"action_id":   action.ID,
		"account_id":  accountID,
		"target":      target.Key(),
		"action_type": action.ActionType,
		"value":       action.ComputedValue,
		"trigger":     action.TriggeredBy,
	}).Info("automation: action proposed")

	// Despacho assíncrono: o chamador recebe a ação pending na hora
	s.wg.Add(1)
	go s.dispatch(action)

	return action, nil
}

// computeAction decide tipo e valor da ação a partir do gatilho. Os valores
// de adjust_* são deltas percentuais aplicados pelo executor.
func (s *Service) computeAction(ctx context.Context, accountID string, proposal *Proposal) (domain.ActionType, float64, string, error) {
	switch proposal.Source {
	case domain.TriggerStrategyChange, domain.TriggerSpecialDate:
		params, err := s.strategyService.EffectiveParams(ctx, accountID, time.Now())
		if err != nil {
			return "", 0, "", err
		}

		delta := utils.RoundWithTwoDecimalPlace((params.BudgetMultiplier - 1) * 100)
		reason := "ajuste de orçamento pela estratégia " + params.StrategyName
		return domain.ActionAdjustBudget, delta, reason, nil

	case domain.TriggerAlert:
		if proposal.Alert == nil {
			return "", 0, "", ErrUnknownTrigger
		}

		switch proposal.Alert.Severity {
		case domain.SeverityCritical:
			return domain.ActionPause, 0, "pausa por alerta crítico: " + proposal.Alert.Message, nil
		case domain.SeverityHigh:
			return domain.ActionAdjustBudget, -25, "redução de orçamento por alerta: " + proposal.Alert.Message, nil
		case domain.SeverityMedium:
			return domain.ActionAdjustBid, -10, "redução de lance por alerta: " + proposal.Alert.Message, nil
		default:
			return "", 0, "", ErrNothingToDo
		}
	}

	return "", 0, "", ErrUnknownTrigger
}

// ProposeForAccount propõe ajustes de orçamento para todas as campanhas
// ativas da conta, tipicamente após a troca de estratégia. Alvos com ação
// em andamento são pulados e reportados no log, não abortam o lote.
func (s *Service) ProposeForAccount(ctx context.Context, accountID string) ([]*domain.AutomationAction, error) {
	if accountID == "" {
		return nil, ErrAccountRequired
	}

	campaigns, err := s.executor.ListCampaigns(ctx, accountID)
	if err != nil {
		return nil, err
	}

	actions := make([]*domain.AutomationAction, 0, len(campaigns))
	for _, campaign := range campaigns {
		if !campaign.Active {
			continue
		}

		target := domain.ActionTarget{Kind: domain.TargetCampaign, ID: campaign.ID}
		action, err := s.Propose(ctx, accountID, target, &Proposal{Source: domain.TriggerStrategyChange})
		if err != nil {
			if errors.Is(err, ErrActionInFlight) {
				log.ForContext(ctx).WithFields(log.Fields{
					"account_id":  accountID,
					"campaign_id": campaign.ID,
				}).Warn("automation: campaign skipped, action already in flight")
				continue
			}
			return actions, err
		}

		actions = append(actions, action)
	}

	return actions, nil
}

// dispatch envia a ação ao executor com prazo limitado. Resposta aceita
// fecha a ação como acknowledged; erro ou recusa fecham como failed. O
// prazo excedido nunca vira retry infinito: o estado terminal é failed.
func (s *Service) dispatch(action *domain.AutomationAction) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
	defer cancel()

	moved, err := s.actionRepo.MarkDispatched(action.ID, time.Now())
	if err != nil || !moved {
		// A ação fica pending e a varredura periódica a fecha como
		// failed, liberando o alvo
		log.L.WithFields(log.Fields{
			"action_id": action.ID,
		}).Error("automation: failed to mark action as dispatched")
		return
	}

	receipt, err := s.executor.ExecuteAction(ctx, action)
	if err != nil {
		s.complete(action.ID, domain.ActionStatusFailed)
		return
	}

	if !receipt.Accepted {
		log.L.WithFields(log.Fields{
			"action_id": action.ID,
			"message":   receipt.Message,
		}).Warn("automation: action rejected by executor")
		s.complete(action.ID, domain.ActionStatusFailed)
		return
	}

	s.complete(action.ID, domain.ActionStatusAcknowledged)
}

func (s *Service) complete(actionID string, status domain.ActionStatus) {
	if _, err := s.actionRepo.MarkCompleted(actionID, status, time.Now()); err != nil {
		log.L.WithFields(log.Fields{
			"action_id": actionID,
			"status":    status,
			"error":     err.Error(),
		}).Error("automation: failed to complete action")
		return
	}

	log.L.WithFields(log.Fields{
		"action_id": actionID,
		"status":    status,
	}).Info("automation: action completed")
}

// HandleExecutorCallback fecha uma ação despachada a partir do callback
// assíncrono do executor
func (s *Service) HandleExecutorCallback(ctx context.Context, actionID string, success bool, message string) error {
	action, err := s.actionRepo.GetByID(actionID)
	if err != nil {
		return err
	}
	if action == nil {
		return ErrActionNotFound
	}

	status := domain.ActionStatusAcknowledged
	if !success {
		status = domain.ActionStatusFailed
	}

	moved, err := s.actionRepo.MarkCompleted(actionID, status, time.Now())
	if err != nil {
		return err
	}
	if !moved {
		// Ação já fechada (por resposta síncrona ou pela varredura de
		// expiradas); o callback tardio é ignorado
		log.ForContext(ctx).WithFields(log.Fields{
			"action_id": actionID,
			"message":   message,
		}).Debug("automation: late executor callback ignored")
	}

	return nil
}

func (s *Service) ListActions(_ context.Context, accountID string) ([]*domain.AutomationAction, error) {
	return s.actionRepo.ListByAccount(accountID)
}

// Start assina os tópicos do barramento: seleções de estratégia disparam
// propostas para as campanhas da conta; alertas high/critical com campanha
// identificada disparam proposta corretiva imediata.
func (s *Service) Start(ctx context.Context) error {
	err := s.bus.Subscribe(ctx, messaging.TopicStrategySelection, func(ctx context.Context, msg *messaging.Message) {
		accountID, _ := msg.Details["account_id"].(string)
		if accountID == "" {
			return
		}

		if _, err := s.ProposeForAccount(ctx, accountID); err != nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("automation: failed to propose actions for strategy selection")
		}
	})
	if err != nil {
		return err
	}

	return s.bus.Subscribe(ctx, messaging.TopicEngineEvents, func(ctx context.Context, msg *messaging.Message) {
		if msg.Type != messaging.MessageTypeAlert {
			return
		}

		severity := domain.Severity(stringDetail(msg, "severity"))
		if severity != domain.SeverityHigh && severity != domain.SeverityCritical {
			return
		}

		campaignID := stringDetail(msg, "campaign_id")
		accountID := stringDetail(msg, "account_id")
		if campaignID == "" || accountID == "" {
			return
		}

		alert := &domain.AlertEvent{
			ID:        stringDetail(msg, "event_id"),
			AccountID: accountID,
			Severity:  severity,
			Message:   stringDetail(msg, "message"),
		}

		target := domain.ActionTarget{Kind: domain.TargetCampaign, ID: campaignID}
		_, err := s.Propose(ctx, accountID, target, &Proposal{
			Source: domain.TriggerAlert,
			Alert:  alert,
		})
		if err != nil && !errors.Is(err, ErrActionInFlight) {
			log.ForContext(ctx).WithFields(log.Fields{
				"account_id":  accountID,
				"campaign_id": campaignID,
				"error":       err.Error(),
			}).Error("automation: failed to propose corrective action for alert")
		}
	})
}

func stringDetail(msg *messaging.Message, key string) string {
	value, _ := msg.Details[key].(string)
	return value
}

// Wait bloqueia até os despachos em andamento terminarem. Usado no
// desligamento gracioso e nos testes.
func (s *Service) Wait() {
	s.wg.Wait()
}
