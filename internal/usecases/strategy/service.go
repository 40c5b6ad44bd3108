// Package strategy expõe o catálogo de estratégias, a atribuição atômica de
// estratégia ativa por conta e o cálculo de parâmetros efetivos combinando
// a estratégia com os overlays de data especial vigentes.
package strategy

import (
	"context"
	"time"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/messaging"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/utils"
)

// SpecialDateInput são os dados de criação de um overlay de data especial
type SpecialDateInput struct {
	Name               string   `json:"name" validate:"required"`
	StartDate          string   `json:"start_date" validate:"required"`
	EndDate            string   `json:"end_date" validate:"required"`
	BudgetMultiplier   float64  `json:"budget_multiplier" validate:"required"`
	ACOSAdjustmentPct  float64  `json:"acos_adjustment_pct"`
	PriorityCategories []string `json:"priority_categories"`
	PeakHours          []int    `json:"peak_hours"`
}

type StrategyService interface {
	ListStrategies(ctx context.Context) ([]*domain.Strategy, error)
	GetStrategy(ctx context.Context, id string) (*domain.Strategy, error)
	Apply(ctx context.Context, strategyID, accountID string) (*domain.AccountStrategy, error)
	EffectiveParams(ctx context.Context, accountID string, at time.Time) (*domain.EffectiveParams, error)

	CreateSpecialDate(ctx context.Context, input *SpecialDateInput) (*domain.SpecialDateOverlay, error)
	ListSpecialDates(ctx context.Context) ([]*domain.SpecialDateOverlay, error)
	DeleteSpecialDate(ctx context.Context, id string) error
}

type Service struct {
	strategyRepo    repository.StrategyRepository
	specialDateRepo repository.SpecialDateRepository
	bus             messaging.Bus
}

func NewService(
	strategyRepo repository.StrategyRepository,
	specialDateRepo repository.SpecialDateRepository,
	bus messaging.Bus,
) StrategyService {
	return &Service{
		strategyRepo:    strategyRepo,
		specialDateRepo: specialDateRepo,
		bus:             bus,
	}
}

func (s *Service) ListStrategies(_ context.Context) ([]*domain.Strategy, error) {
	return s.strategyRepo.List()
}

func (s *Service) GetStrategy(_ context.Context, id string) (*domain.Strategy, error) {
	strategy, err := s.strategyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, ErrStrategyNotFound
	}

	return strategy, nil
}

// Apply troca a estratégia ativa da conta em um único swap atômico e
// publica a seleção no barramento para o coordenador de automação reagir.
func (s *Service) Apply(ctx context.Context, strategyID, accountID string) (*domain.AccountStrategy, error) {
	if accountID == "" {
		return nil, ErrAccountIDRequired
	}

	strategy, err := s.strategyRepo.GetByID(strategyID)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, ErrStrategyNotFound
	}

	active, err := s.strategyRepo.ApplyToAccount(accountID, strategyID, time.Now())
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":  accountID,
		"strategy_id": strategyID,
		"strategy":    strategy.Name,
		"version":     active.Version,
	}).Info("strategy: active strategy applied")

	msg := &messaging.Message{
		Type:      messaging.MessageTypeStrategySelection,
		Timestamp: active.AppliedAt,
		Details: map[string]interface{}{
			"account_id":  accountID,
			"strategy_id": strategyID,
			"strategy":    strategy.Name,
			"version":     active.Version,
		},
	}

	if err := s.bus.Publish(ctx, messaging.TopicStrategySelection, msg); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Warn("strategy: failed to publish strategy selection on bus")
	}

	return active, nil
}

// EffectiveParams combina a estratégia ativa da conta com todos os overlays
// vigentes no instante consultado
func (s *Service) EffectiveParams(_ context.Context, accountID string, at time.Time) (*domain.EffectiveParams, error) {
	if accountID == "" {
		return nil, ErrAccountIDRequired
	}

	active, err := s.strategyRepo.GetActiveByAccount(accountID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActiveStrategy
	}

	strategy, err := s.strategyRepo.GetByID(active.StrategyID)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, ErrStrategyNotFound
	}

	overlays, err := s.specialDateRepo.ListInRange(at)
	if err != nil {
		return nil, err
	}

	params := domain.CombineOverlays(strategy, overlays, at)
	params.AccountID = accountID

	return params, nil
}

func (s *Service) CreateSpecialDate(ctx context.Context, input *SpecialDateInput) (*domain.SpecialDateOverlay, error) {
	startDate, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := utils.ParseDate(input.EndDate)
	if err != nil {
		return nil, err
	}

	if endDate.Before(*startDate) {
		return nil, ErrInvalidDateRange
	}

	if input.BudgetMultiplier <= 0 {
		return nil, ErrInvalidMultiplier
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	overlay := &domain.SpecialDateOverlay{
		ID:                 id,
		Name:               input.Name,
		StartDate:          *startDate,
		EndDate:            endDate.Add(24*time.Hour - time.Second), // Inclui o dia final inteiro
		BudgetMultiplier:   input.BudgetMultiplier,
		ACOSAdjustmentPct:  input.ACOSAdjustmentPct,
		PriorityCategories: input.PriorityCategories,
		PeakHours:          input.PeakHours,
	}

	if err := s.specialDateRepo.Create(overlay); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"overlay_id": overlay.ID,
		"name":       overlay.Name,
	}).Info("strategy: special date overlay created")

	return overlay, nil
}

func (s *Service) ListSpecialDates(_ context.Context) ([]*domain.SpecialDateOverlay, error) {
	return s.specialDateRepo.List()
}

func (s *Service) DeleteSpecialDate(_ context.Context, id string) error {
	deleted, err := s.specialDateRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSpecialDateNotFound
	}

	return nil
}
