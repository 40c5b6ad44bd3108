// Package alerting implementa o motor de regras de alerta e o gerenciador
// do ciclo de vida dos eventos. A avaliação só trabalha com regras já
// validadas na criação; o cooldown é um check-and-set atômico no repositório
// para que amostras concorrentes nunca dupliquem um disparo.
package alerting

import (
	"context"
	"time"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/messaging"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/utils"
)

// Dispatcher é a dependência do despachante de notificações. O motor de
// alertas nunca espera pela entrega: disparar o alerta não depende do
// sucesso de nenhum canal.
type Dispatcher interface {
	Dispatch(ctx context.Context, event *domain.AlertEvent, channels []domain.ChannelType)
}

// RuleInput são os dados de criação/atualização de uma regra de alerta
type RuleInput struct {
	AccountID       string   `json:"account_id" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Metric          string   `json:"metric" validate:"required"`
	Condition       string   `json:"condition" validate:"required"`
	Threshold       float64  `json:"threshold"`
	Severity        string   `json:"severity" validate:"required"`
	Channels        []string `json:"channels"`
	CooldownMinutes int      `json:"cooldown_minutes"`
	Enabled         *bool    `json:"enabled"`
}

type AlertService interface {
	CreateRule(ctx context.Context, input *RuleInput) (*domain.AlertRule, error)
	ListRules(ctx context.Context, accountID string) ([]*domain.AlertRule, error)
	UpdateRule(ctx context.Context, id string, input *RuleInput) (*domain.AlertRule, error)
	ToggleRule(ctx context.Context, id string, enabled bool) error
	DeleteRule(ctx context.Context, id string) error

	Evaluate(ctx context.Context, sample *domain.MetricSample) ([]*domain.AlertEvent, error)

	Acknowledge(ctx context.Context, id string) (*domain.AlertEvent, error)
	Resolve(ctx context.Context, id string) (*domain.AlertEvent, error)
	ListEvents(ctx context.Context, accountID string, onlyUnresolved bool) ([]*domain.AlertEvent, error)
}

type Service struct {
	ruleRepo        repository.AlertRuleRepository
	eventRepo       repository.AlertEventRepository
	dispatcher      Dispatcher
	bus             messaging.Bus
	defaultCooldown int
}

func NewService(
	ruleRepo repository.AlertRuleRepository,
	eventRepo repository.AlertEventRepository,
	dispatcher Dispatcher,
	bus messaging.Bus,
	cfg *config.Config,
) AlertService {
	return &Service{
		ruleRepo:        ruleRepo,
		eventRepo:       eventRepo,
		dispatcher:      dispatcher,
		bus:             bus,
		defaultCooldown: cfg.Alerting.DefaultCooldownMinutes,
	}
}

func (s *Service) CreateRule(ctx context.Context, input *RuleInput) (*domain.AlertRule, error) {
	rule, err := s.buildRule(input)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}
	rule.ID = id

	if err := s.ruleRepo.Create(rule); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"account_id": input.AccountID,
			"error":      err.Error(),
		}).Error("alerting: failed to create rule")
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"rule_id":    rule.ID,
		"account_id": rule.AccountID,
		"metric":     rule.Metric,
	}).Info("alerting: rule created")

	return rule, nil
}

func (s *Service) ListRules(_ context.Context, accountID string) ([]*domain.AlertRule, error) {
	return s.ruleRepo.ListByAccount(accountID)
}

func (s *Service) UpdateRule(ctx context.Context, id string, input *RuleInput) (*domain.AlertRule, error) {
	existing, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrRuleNotFound
	}

	rule, err := s.buildRule(input)
	if err != nil {
		return nil, err
	}
	rule.ID = existing.ID
	rule.AccountID = existing.AccountID

	if err := s.ruleRepo.Update(rule); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"rule_id": id,
			"error":   err.Error(),
		}).Error("alerting: failed to update rule")
		return nil, err
	}

	return rule, nil
}

func (s *Service) ToggleRule(ctx context.Context, id string, enabled bool) error {
	updated, err := s.ruleRepo.SetEnabled(id, enabled)
	if err != nil {
		return err
	}
	if !updated {
		return ErrRuleNotFound
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"rule_id": id,
		"enabled": enabled,
	}).Info("alerting: rule toggled")

	return nil
}

func (s *Service) DeleteRule(_ context.Context, id string) error {
	deleted, err := s.ruleRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRuleNotFound
	}

	return nil
}

// Evaluate avalia uma amostra contra todas as regras habilitadas da conta
// para aquela métrica. Cada regra satisfeita e fora de cooldown gera um
// AlertEvent independente. Métrica desconhecida não é erro: a amostra é
// simplesmente ignorada.
func (s *Service) Evaluate(ctx context.Context, sample *domain.MetricSample) ([]*domain.AlertEvent, error) {
	logger := log.ForContext(ctx)

	if !domain.IsKnownMetric(sample.Metric) {
		logger.WithFields(log.Fields{
			"account_id": sample.AccountID,
			"metric":     sample.Metric,
		}).Debug("alerting: unknown metric ignored")
		return nil, nil
	}

	rules, err := s.ruleRepo.ListEnabledByAccountAndMetric(sample.AccountID, sample.Metric)
	if err != nil {
		return nil, err
	}

	now := sample.Timestamp
	if now.IsZero() {
		now = time.Now()
	}

	events := make([]*domain.AlertEvent, 0)
	for _, rule := range rules {
		if !rule.Condition.Evaluate(sample.Value, rule.Threshold) {
			continue
		}

		// A listagem já traz o último disparo conhecido; dentro da
		// janela de silêncio nem tentamos o check-and-set.
		if !rule.CooldownExpired(now) {
			logger.WithFields(log.Fields{
				"rule_id":    rule.ID,
				"account_id": rule.AccountID,
			}).Debug("alerting: rule inside cooldown window, skipping")
			continue
		}

		// Check-and-set atômico: só o vencedor da corrida avança o
		// last_triggered_at e pode disparar.
		acquired, err := s.ruleRepo.TryAcquireCooldown(rule.ID, now, rule.Cooldown())
		if err != nil {
			logger.WithFields(log.Fields{
				"rule_id": rule.ID,
				"error":   err.Error(),
			}).Error("alerting: cooldown check failed")
			continue
		}
		if !acquired {
			logger.WithFields(log.Fields{
				"rule_id":    rule.ID,
				"account_id": rule.AccountID,
			}).Debug("alerting: rule in cooldown, skipping")
			continue
		}

		event, err := s.fireRule(ctx, rule, sample, now)
		if err != nil {
			logger.WithFields(log.Fields{
				"rule_id": rule.ID,
				"error":   err.Error(),
			}).Error("alerting: failed to persist alert event")
			continue
		}

		events = append(events, event)
	}

	return events, nil
}

func (s *Service) fireRule(ctx context.Context, rule *domain.AlertRule, sample *domain.MetricSample, now time.Time) (*domain.AlertEvent, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	event := &domain.AlertEvent{
		ID:          id,
		RuleID:      rule.ID,
		AccountID:   rule.AccountID,
		Metric:      rule.Metric,
		ActualValue: sample.Value,
		Threshold:   rule.Threshold,
		Severity:    rule.Severity,
		Message:     domain.BuildAlertMessage(rule, sample.Value),
		State:       domain.AlertStateTriggered,
		CreatedAt:   now,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"event_id":   event.ID,
		"rule_id":    rule.ID,
		"account_id": rule.AccountID,
		"severity":   event.Severity,
		"value":      sample.Value,
	}).Info("alerting: alert triggered")

	// Notificação é fire-and-forget: o alerta está disparado
	// independentemente de qualquer canal entregar.
	s.dispatcher.Dispatch(ctx, event, rule.Channels)

	s.publishAlert(ctx, event, sample)

	return event, nil
}

func (s *Service) publishAlert(ctx context.Context, event *domain.AlertEvent, sample *domain.MetricSample) {
	msg := &messaging.Message{
		Type:      messaging.MessageTypeAlert,
		Timestamp: event.CreatedAt,
		Details: map[string]interface{}{
			"event_id":    event.ID,
			"rule_id":     event.RuleID,
			"account_id":  event.AccountID,
			"metric":      string(event.Metric),
			"severity":    string(event.Severity),
			"value":       event.ActualValue,
			"threshold":   event.Threshold,
			"message":     event.Message,
			"campaign_id": sample.CampaignID,
		},
	}

	if err := s.bus.Publish(ctx, messaging.TopicEngineEvents, msg); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"event_id": event.ID,
			"error":    err.Error(),
		}).Warn("alerting: failed to publish alert on bus")
	}
}

// Acknowledge move o evento de triggered para acknowledged. A guarda de
// estado fica na transição condicional do repositório.
func (s *Service) Acknowledge(ctx context.Context, id string) (*domain.AlertEvent, error) {
	return s.transition(ctx, id, s.eventRepo.Acknowledge)
}

// Resolve move o evento para o estado terminal resolved
func (s *Service) Resolve(ctx context.Context, id string) (*domain.AlertEvent, error) {
	return s.transition(ctx, id, s.eventRepo.Resolve)
}

func (s *Service) transition(ctx context.Context, id string, apply func(string, time.Time) (bool, error)) (*domain.AlertEvent, error) {
	moved, err := apply(id, time.Now())
	if err != nil {
		return nil, err
	}

	if !moved {
		event, err := s.eventRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, ErrEventNotFound
		}
		return nil, ErrInvalidStateTransition
	}

	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"event_id": id,
		"state":    event.State,
	}).Info("alerting: alert state changed")

	return event, nil
}

func (s *Service) ListEvents(_ context.Context, accountID string, onlyUnresolved bool) ([]*domain.AlertEvent, error) {
	return s.eventRepo.ListByAccount(accountID, onlyUnresolved)
}

// buildRule valida a entrada e materializa a regra com o conjunto fechado
// de métrica/comparador/severidade. Entrada malformada nunca chega à
// avaliação.
func (s *Service) buildRule(input *RuleInput) (*domain.AlertRule, error) {
	metric := domain.MetricName(input.Metric)
	if !domain.IsKnownMetric(metric) {
		return nil, newRuleValidationError(ErrInvalidMetric, "metric", input.Metric)
	}

	condition, err := domain.ParseComparator(input.Condition)
	if err != nil {
		return nil, newRuleValidationError(ErrInvalidCondition, "condition", input.Condition)
	}

	severity := domain.Severity(input.Severity)
	if !domain.ValidSeverity(severity) {
		return nil, newRuleValidationError(ErrInvalidSeverity, "severity", input.Severity)
	}

	if input.Threshold < 0 {
		return nil, newRuleValidationError(ErrInvalidThreshold, "threshold", "")
	}

	if input.CooldownMinutes < 0 {
		return nil, newRuleValidationError(ErrInvalidCooldown, "cooldown_minutes", "")
	}

	channels := make([]domain.ChannelType, 0, len(input.Channels))
	for _, raw := range input.Channels {
		channel := domain.ChannelType(raw)
		if !domain.ValidChannel(channel) {
			return nil, newRuleValidationError(ErrInvalidChannel, "channels", raw)
		}
		channels = append(channels, channel)
	}

	cooldown := input.CooldownMinutes
	if cooldown == 0 {
		cooldown = s.defaultCooldown
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	return &domain.AlertRule{
		AccountID:       input.AccountID,
		Name:            input.Name,
		Metric:          metric,
		Condition:       condition,
		Threshold:       input.Threshold,
		Severity:        severity,
		Channels:        channels,
		CooldownMinutes: cooldown,
		Enabled:         enabled,
	}, nil
}
