package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/messaging"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository/mocks"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

func newProtectMarginStrategy() *domain.Strategy {
	return &domain.Strategy{
		ID:                 "STR01",
		Name:               "Proteger Margem",
		ACOSMin:            10,
		ACOSMax:            15,
		BudgetMultiplier:   0.7,
		BidAdjustmentPct:   -15,
		MarginThresholdPct: 25,
	}
}

func TestService_EffectiveParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	at := time.Date(2025, 11, 28, 12, 0, 0, 0, time.UTC)

	blackFriday := &domain.SpecialDateOverlay{
		ID:                "OVL01",
		Name:              "Black Friday",
		StartDate:         time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 11, 30, 23, 59, 59, 0, time.UTC),
		BudgetMultiplier:  3.0,
		ACOSAdjustmentPct: 10,
	}

	cyberMonday := &domain.SpecialDateOverlay{
		ID:                "OVL02",
		Name:              "Cyber Monday",
		StartDate:         time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 11, 30, 23, 59, 59, 0, time.UTC),
		BudgetMultiplier:  1.5,
		ACOSAdjustmentPct: 5,
	}

	tests := []struct {
		name     string
		setup    func(strategyRepo *mocks.MockStrategyRepository, specialDateRepo *mocks.MockSpecialDateRepository)
		validate func(t *testing.T, params *domain.EffectiveParams, err error)
	}{
		{
			name: "Estratégia ativa combinada com overlay vigente",
			setup: func(strategyRepo *mocks.MockStrategyRepository, specialDateRepo *mocks.MockSpecialDateRepository) {
				strategyRepo.EXPECT().
					GetActiveByAccount("ACC001").
					Return(&domain.AccountStrategy{AccountID: "ACC001", StrategyID: "STR01", Version: 3}, nil)
				strategyRepo.EXPECT().
					GetByID("STR01").
					Return(newProtectMarginStrategy(), nil)
				specialDateRepo.EXPECT().
					ListInRange(at).
					Return([]*domain.SpecialDateOverlay{blackFriday}, nil)
			},
			validate: func(t *testing.T, params *domain.EffectiveParams, err error) {
				require.NoError(t, err)
				assert.Equal(t, "ACC001", params.AccountID)
				assert.Equal(t, "Proteger Margem", params.StrategyName)
				// 0.7 * 3.0 do overlay
				assert.InDelta(t, 2.1, params.BudgetMultiplier, 0.0001)
				// Faixa de ACOS deslocada em +10
				assert.InDelta(t, 20.0, params.ACOSMin, 0.0001)
				assert.InDelta(t, 25.0, params.ACOSMax, 0.0001)
				assert.Equal(t, []string{"OVL01"}, params.OverlayIDs)
			},
		},
		{
			name: "Dois overlays simultâneos: multiplicadores compostos, faixa somada e ordem por ID",
			setup: func(strategyRepo *mocks.MockStrategyRepository, specialDateRepo *mocks.MockSpecialDateRepository) {
				strategyRepo.EXPECT().
					GetActiveByAccount("ACC001").
					Return(&domain.AccountStrategy{AccountID: "ACC001", StrategyID: "STR01"}, nil)
				strategyRepo.EXPECT().
					GetByID("STR01").
					Return(newProtectMarginStrategy(), nil)
				// Devolvidos fora de ordem de propósito: a combinação
				// reordena por ID crescente
				specialDateRepo.EXPECT().
					ListInRange(at).
					Return([]*domain.SpecialDateOverlay{cyberMonday, blackFriday}, nil)
			},
			validate: func(t *testing.T, params *domain.EffectiveParams, err error) {
				require.NoError(t, err)
				// 0.7 * 3.0 * 1.5: multiplicação é comutativa
				assert.InDelta(t, 3.15, params.BudgetMultiplier, 0.0001)
				// Ajustes de ACOS somados: +10 e +5 sobre (10, 15)
				assert.InDelta(t, 25.0, params.ACOSMin, 0.0001)
				assert.InDelta(t, 30.0, params.ACOSMax, 0.0001)
				// Ordem crescente de ID, independente da ordem de entrada
				assert.Equal(t, []string{"OVL01", "OVL02"}, params.OverlayIDs)
			},
		},
		{
			name: "Sem overlay vigente os parâmetros são os da estratégia",
			setup: func(strategyRepo *mocks.MockStrategyRepository, specialDateRepo *mocks.MockSpecialDateRepository) {
				strategyRepo.EXPECT().
					GetActiveByAccount("ACC001").
					Return(&domain.AccountStrategy{AccountID: "ACC001", StrategyID: "STR01"}, nil)
				strategyRepo.EXPECT().
					GetByID("STR01").
					Return(newProtectMarginStrategy(), nil)
				specialDateRepo.EXPECT().
					ListInRange(at).
					Return(nil, nil)
			},
			validate: func(t *testing.T, params *domain.EffectiveParams, err error) {
				require.NoError(t, err)
				assert.InDelta(t, 0.7, params.BudgetMultiplier, 0.0001)
				assert.InDelta(t, 10.0, params.ACOSMin, 0.0001)
				assert.InDelta(t, 15.0, params.ACOSMax, 0.0001)
				assert.Empty(t, params.OverlayIDs)
			},
		},
		{
			name: "Conta sem estratégia ativa",
			setup: func(strategyRepo *mocks.MockStrategyRepository, specialDateRepo *mocks.MockSpecialDateRepository) {
				strategyRepo.EXPECT().
					GetActiveByAccount("ACC001").
					Return(nil, nil)
			},
			validate: func(t *testing.T, params *domain.EffectiveParams, err error) {
				assert.ErrorIs(t, err, ErrNoActiveStrategy)
				assert.Nil(t, params)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategyRepo := mocks.NewMockStrategyRepository(ctrl)
			specialDateRepo := mocks.NewMockSpecialDateRepository(ctrl)

			service := &Service{
				strategyRepo:    strategyRepo,
				specialDateRepo: specialDateRepo,
				bus:             messaging.NewMemoryBus(),
			}

			tt.setup(strategyRepo, specialDateRepo)

			params, err := service.EffectiveParams(context.Background(), "ACC001", at)
			tt.validate(t, params, err)
		})
	}
}

func TestService_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Aplicação publica a seleção no barramento", func(t *testing.T) {
		strategyRepo := mocks.NewMockStrategyRepository(ctrl)
		bus := messaging.NewMemoryBus()

		var published []*messaging.Message
		err := bus.Subscribe(context.Background(), messaging.TopicStrategySelection, func(_ context.Context, msg *messaging.Message) {
			published = append(published, msg)
		})
		require.NoError(t, err)

		service := &Service{strategyRepo: strategyRepo, bus: bus}

		strategyRepo.EXPECT().
			GetByID("STR01").
			Return(newProtectMarginStrategy(), nil)
		strategyRepo.EXPECT().
			ApplyToAccount("ACC001", "STR01", gomock.Any()).
			Return(&domain.AccountStrategy{AccountID: "ACC001", StrategyID: "STR01", Version: 4, AppliedAt: time.Now()}, nil)

		active, err := service.Apply(context.Background(), "STR01", "ACC001")
		require.NoError(t, err)
		assert.Equal(t, int64(4), active.Version)

		require.Len(t, published, 1)
		assert.Equal(t, messaging.MessageTypeStrategySelection, published[0].Type)
		assert.Equal(t, "ACC001", published[0].Details["account_id"])
		assert.Equal(t, "STR01", published[0].Details["strategy_id"])
	})

	t.Run("Estratégia inexistente", func(t *testing.T) {
		strategyRepo := mocks.NewMockStrategyRepository(ctrl)
		service := &Service{strategyRepo: strategyRepo, bus: messaging.NewMemoryBus()}

		strategyRepo.EXPECT().
			GetByID("STR99").
			Return(nil, nil)

		active, err := service.Apply(context.Background(), "STR99", "ACC001")
		assert.ErrorIs(t, err, ErrStrategyNotFound)
		assert.Nil(t, active)
	})

	t.Run("Conta vazia é rejeitada antes de tocar o repositório", func(t *testing.T) {
		service := &Service{bus: messaging.NewMemoryBus()}

		active, err := service.Apply(context.Background(), "STR01", "")
		assert.ErrorIs(t, err, ErrAccountIDRequired)
		assert.Nil(t, active)
	})
}

func TestService_CreateSpecialDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		input    *SpecialDateInput
		setup    func(specialDateRepo *mocks.MockSpecialDateRepository)
		validate func(t *testing.T, overlay *domain.SpecialDateOverlay, err error)
	}{
		{
			name: "Janela válida inclui o dia final inteiro",
			input: &SpecialDateInput{
				Name:             "Black Friday",
				StartDate:        "2025-11-24",
				EndDate:          "2025-11-30",
				BudgetMultiplier: 3.0,
			},
			setup: func(specialDateRepo *mocks.MockSpecialDateRepository) {
				specialDateRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil)
			},
			validate: func(t *testing.T, overlay *domain.SpecialDateOverlay, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, overlay.ID)
				assert.True(t, overlay.InRange(time.Date(2025, 11, 30, 22, 0, 0, 0, time.UTC)))
				assert.False(t, overlay.InRange(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
			},
		},
		{
			name: "Fim antes do início",
			input: &SpecialDateInput{
				Name:             "Janela invertida",
				StartDate:        "2025-11-30",
				EndDate:          "2025-11-24",
				BudgetMultiplier: 2.0,
			},
			setup: func(specialDateRepo *mocks.MockSpecialDateRepository) {},
			validate: func(t *testing.T, overlay *domain.SpecialDateOverlay, err error) {
				assert.ErrorIs(t, err, ErrInvalidDateRange)
			},
		},
		{
			name: "Multiplicador não positivo",
			input: &SpecialDateInput{
				Name:             "Multiplicador zero",
				StartDate:        "2025-11-24",
				EndDate:          "2025-11-30",
				BudgetMultiplier: 0,
			},
			setup: func(specialDateRepo *mocks.MockSpecialDateRepository) {},
			validate: func(t *testing.T, overlay *domain.SpecialDateOverlay, err error) {
				assert.ErrorIs(t, err, ErrInvalidMultiplier)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specialDateRepo := mocks.NewMockSpecialDateRepository(ctrl)
			service := &Service{specialDateRepo: specialDateRepo, bus: messaging.NewMemoryBus()}

			tt.setup(specialDateRepo)

			overlay, err := service.CreateSpecialDate(context.Background(), tt.input)
			tt.validate(t, overlay, err)
		})
	}
}
