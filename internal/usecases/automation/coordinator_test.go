package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/integrator/campaignexec/execclient"
	execmocks "github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/integrator/campaignexec/mocks"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/messaging"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository/mocks"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/margin"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/strategy"
)

// fakeStrategyService devolve parâmetros efetivos fixos para o coordenador
type fakeStrategyService struct {
	strategy.StrategyService

	params *domain.EffectiveParams
	err    error
}

func (f *fakeStrategyService) EffectiveParams(_ context.Context, accountID string, _ time.Time) (*domain.EffectiveParams, error) {
	if f.err != nil {
		return nil, f.err
	}

	params := *f.params
	params.AccountID = accountID
	return &params, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Executor: config.Executor{TimeoutSeconds: 2},
		Margin:   config.Margin{DefaultSafetyPct: 10.0},
	}
}

func campaignTarget(id string) domain.ActionTarget {
	return domain.ActionTarget{Kind: domain.TargetCampaign, ID: id}
}

func TestService_Propose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	escalarVendas := &domain.EffectiveParams{
		StrategyID:       "STR02",
		StrategyName:     "Escalar Vendas",
		BudgetMultiplier: 2.1,
		BidAdjustmentPct: 15,
	}

	tests := []struct {
		name     string
		proposal *Proposal
		setup    func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator)
		validate func(t *testing.T, action *domain.AutomationAction, err error)
	}{
		{
			name:     "Troca de estratégia vira ajuste percentual de orçamento",
			proposal: &Proposal{Source: domain.TriggerStrategyChange},
			setup: func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator) {
				actionRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil)
				actionRepo.EXPECT().
					MarkDispatched(gomock.Any(), gomock.Any()).
					Return(true, nil)
				executor.EXPECT().
					ExecuteAction(gomock.Any(), gomock.Any()).
					Return(&execclient.ActionReceipt{Accepted: true}, nil)
				actionRepo.EXPECT().
					MarkCompleted(gomock.Any(), domain.ActionStatusAcknowledged, gomock.Any()).
					Return(true, nil)
			},
			validate: func(t *testing.T, action *domain.AutomationAction, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ActionAdjustBudget, action.ActionType)
				// (2.1 - 1) * 100
				assert.InDelta(t, 110.0, action.ComputedValue, 0.0001)
				assert.Equal(t, domain.TriggerStrategyChange, action.TriggeredBy)
				assert.Equal(t, domain.ActionStatusPending, action.Status)
			},
		},
		{
			name: "Alerta crítico vira pausa imediata",
			proposal: &Proposal{
				Source: domain.TriggerAlert,
				Alert: &domain.AlertEvent{
					ID:       "EVT01",
					Severity: domain.SeverityCritical,
					Message:  "ACOS 45.00 acima do limite 20.00",
				},
			},
			setup: func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator) {
				actionRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil)
				actionRepo.EXPECT().
					MarkDispatched(gomock.Any(), gomock.Any()).
					Return(true, nil)
				executor.EXPECT().
					ExecuteAction(gomock.Any(), gomock.Any()).
					Return(&execclient.ActionReceipt{Accepted: true}, nil)
				actionRepo.EXPECT().
					MarkCompleted(gomock.Any(), domain.ActionStatusAcknowledged, gomock.Any()).
					Return(true, nil)
			},
			validate: func(t *testing.T, action *domain.AutomationAction, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ActionPause, action.ActionType)
				assert.Zero(t, action.ComputedValue)
				assert.Contains(t, action.Reason, "alerta crítico")
			},
		},
		{
			name: "Alerta medium reduz lance",
			proposal: &Proposal{
				Source: domain.TriggerAlert,
				Alert:  &domain.AlertEvent{ID: "EVT02", Severity: domain.SeverityMedium, Message: "CPC alto"},
			},
			setup: func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator) {
				actionRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil)
				actionRepo.EXPECT().
					MarkDispatched(gomock.Any(), gomock.Any()).
					Return(true, nil)
				executor.EXPECT().
					ExecuteAction(gomock.Any(), gomock.Any()).
					Return(&execclient.ActionReceipt{Accepted: true}, nil)
				actionRepo.EXPECT().
					MarkCompleted(gomock.Any(), domain.ActionStatusAcknowledged, gomock.Any()).
					Return(true, nil)
			},
			validate: func(t *testing.T, action *domain.AutomationAction, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ActionAdjustBid, action.ActionType)
				assert.InDelta(t, -10.0, action.ComputedValue, 0.0001)
			},
		},
		{
			name: "Alerta low não gera ação",
			proposal: &Proposal{
				Source: domain.TriggerAlert,
				Alert:  &domain.AlertEvent{ID: "EVT03", Severity: domain.SeverityLow},
			},
			setup: func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator) {},
			validate: func(t *testing.T, action *domain.AutomationAction, err error) {
				assert.ErrorIs(t, err, ErrNothingToDo)
				assert.Nil(t, action)
			},
		},
		{
			name:     "Alvo com ação em andamento é rejeitado, nunca enfileirado",
			proposal: &Proposal{Source: domain.TriggerStrategyChange},
			setup: func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator) {
				actionRepo.EXPECT().
					Create(gomock.Any()).
					Return(repository.ErrInFlightConflict)
			},
			validate: func(t *testing.T, action *domain.AutomationAction, err error) {
				assert.ErrorIs(t, err, ErrActionInFlight)
				assert.Nil(t, action)
			},
		},
		{
			name: "Margem em perigo converte aumento em pausa",
			proposal: &Proposal{
				Source: domain.TriggerStrategyChange,
				Margin: &domain.MarginValidationInput{
					ProductPrice:     100,
					ProductCost:      85,
					CurrentMarkupPct: 10,
					SafetyMarginPct:  10,
				},
			},
			setup: func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator) {
				actionRepo.EXPECT().
					Create(gomock.Any()).
					DoAndReturn(func(action *domain.AutomationAction) error {
						assert.Equal(t, domain.ActionPause, action.ActionType)
						assert.Zero(t, action.ComputedValue)
						assert.Contains(t, action.Reason, "margem")
						return nil
					})
				actionRepo.EXPECT().
					MarkDispatched(gomock.Any(), gomock.Any()).
					Return(true, nil)
				executor.EXPECT().
					ExecuteAction(gomock.Any(), gomock.Any()).
					Return(&execclient.ActionReceipt{Accepted: true}, nil)
				actionRepo.EXPECT().
					MarkCompleted(gomock.Any(), domain.ActionStatusAcknowledged, gomock.Any()).
					Return(true, nil)
			},
			validate: func(t *testing.T, action *domain.AutomationAction, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ActionPause, action.ActionType)
			},
		},
		{
			name:     "Falha ao registrar o despacho não chama o executor",
			proposal: &Proposal{Source: domain.TriggerStrategyChange},
			setup: func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator) {
				actionRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil)
				// Sem expectativa no executor: a ação fica pending e a
				// varredura periódica a fecha depois
				actionRepo.EXPECT().
					MarkDispatched(gomock.Any(), gomock.Any()).
					Return(false, errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, action *domain.AutomationAction, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ActionStatusPending, action.Status)
			},
		},
		{
			name:     "Recusa do executor fecha a ação como failed",
			proposal: &Proposal{Source: domain.TriggerStrategyChange},
			setup: func(actionRepo *mocks.MockActionRepository, executor *execmocks.MockExecutorIntegrator) {
				actionRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil)
				actionRepo.EXPECT().
					MarkDispatched(gomock.Any(), gomock.Any()).
					Return(true, nil)
				executor.EXPECT().
					ExecuteAction(gomock.Any(), gomock.Any()).
					Return(&execclient.ActionReceipt{Accepted: false, Message: "campanha arquivada"}, nil)
				actionRepo.EXPECT().
					MarkCompleted(gomock.Any(), domain.ActionStatusFailed, gomock.Any()).
					Return(true, nil)
			},
			validate: func(t *testing.T, action *domain.AutomationAction, err error) {
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionRepo := mocks.NewMockActionRepository(ctrl)
			executor := execmocks.NewMockExecutorIntegrator(ctrl)

			service := NewService(
				actionRepo,
				&fakeStrategyService{params: escalarVendas},
				margin.NewService(testConfig()),
				executor,
				messaging.NewMemoryBus(),
				testConfig(),
			)

			tt.setup(actionRepo, executor)

			action, err := service.Propose(context.Background(), "ACC001", campaignTarget("CAMP01"), tt.proposal)
			service.Wait()

			tt.validate(t, action, err)
		})
	}
}

func TestService_ProposeValidation(t *testing.T) {
	service := NewService(nil, nil, nil, nil, messaging.NewMemoryBus(), testConfig())

	_, err := service.Propose(context.Background(), "", campaignTarget("CAMP01"), &Proposal{Source: domain.TriggerStrategyChange})
	assert.ErrorIs(t, err, ErrAccountRequired)

	_, err = service.Propose(context.Background(), "ACC001", domain.ActionTarget{}, &Proposal{Source: domain.TriggerStrategyChange})
	assert.ErrorIs(t, err, ErrTargetRequired)

	_, err = service.Propose(context.Background(), "ACC001", campaignTarget("CAMP01"), &Proposal{Source: domain.ActionTrigger("cron")})
	assert.ErrorIs(t, err, ErrUnknownTrigger)
}

func TestService_ProposeForAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actionRepo := mocks.NewMockActionRepository(ctrl)
	executor := execmocks.NewMockExecutorIntegrator(ctrl)

	service := NewService(
		actionRepo,
		&fakeStrategyService{params: &domain.EffectiveParams{StrategyName: "Escalar Vendas", BudgetMultiplier: 1.5}},
		margin.NewService(testConfig()),
		executor,
		messaging.NewMemoryBus(),
		testConfig(),
	)

	executor.EXPECT().
		ListCampaigns(gomock.Any(), "ACC001").
		Return([]domain.Campaign{
			{ID: "CAMP01", Active: true},
			{ID: "CAMP02", Active: false}, // Inativa: ignorada
			{ID: "CAMP03", Active: true},  // Em andamento: pulada sem abortar o lote
		}, nil)

	gomock.InOrder(
		actionRepo.EXPECT().Create(gomock.Any()).Return(nil),
		actionRepo.EXPECT().Create(gomock.Any()).Return(repository.ErrInFlightConflict),
	)
	actionRepo.EXPECT().
		MarkDispatched(gomock.Any(), gomock.Any()).
		Return(true, nil)
	executor.EXPECT().
		ExecuteAction(gomock.Any(), gomock.Any()).
		Return(&execclient.ActionReceipt{Accepted: true}, nil)
	actionRepo.EXPECT().
		MarkCompleted(gomock.Any(), domain.ActionStatusAcknowledged, gomock.Any()).
		Return(true, nil)

	actions, err := service.ProposeForAccount(context.Background(), "ACC001")
	service.Wait()

	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "CAMP01", actions[0].Target.ID)
}

func TestService_HandleExecutorCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		success  bool
		setup    func(actionRepo *mocks.MockActionRepository)
		validate func(t *testing.T, err error)
	}{
		{
			name:    "Callback de sucesso fecha como acknowledged",
			success: true,
			setup: func(actionRepo *mocks.MockActionRepository) {
				actionRepo.EXPECT().
					GetByID("ACT01").
					Return(&domain.AutomationAction{ID: "ACT01", Status: domain.ActionStatusDispatched}, nil)
				actionRepo.EXPECT().
					MarkCompleted("ACT01", domain.ActionStatusAcknowledged, gomock.Any()).
					Return(true, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:    "Callback de falha fecha como failed",
			success: false,
			setup: func(actionRepo *mocks.MockActionRepository) {
				actionRepo.EXPECT().
					GetByID("ACT01").
					Return(&domain.AutomationAction{ID: "ACT01", Status: domain.ActionStatusDispatched}, nil)
				actionRepo.EXPECT().
					MarkCompleted("ACT01", domain.ActionStatusFailed, gomock.Any()).
					Return(true, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:    "Callback tardio de ação já fechada é ignorado sem erro",
			success: true,
			setup: func(actionRepo *mocks.MockActionRepository) {
				actionRepo.EXPECT().
					GetByID("ACT01").
					Return(&domain.AutomationAction{ID: "ACT01", Status: domain.ActionStatusFailed}, nil)
				actionRepo.EXPECT().
					MarkCompleted("ACT01", domain.ActionStatusAcknowledged, gomock.Any()).
					Return(false, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:    "Ação inexistente",
			success: true,
			setup: func(actionRepo *mocks.MockActionRepository) {
				actionRepo.EXPECT().
					GetByID("ACT01").
					Return(nil, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrActionNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionRepo := mocks.NewMockActionRepository(ctrl)
			service := NewService(actionRepo, nil, nil, nil, messaging.NewMemoryBus(), testConfig())

			tt.setup(actionRepo)

			err := service.HandleExecutorCallback(context.Background(), "ACT01", tt.success, "")
			tt.validate(t, err)
		})
	}
}

func TestService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Seleção de estratégia no barramento dispara propostas para a conta", func(t *testing.T) {
		actionRepo := mocks.NewMockActionRepository(ctrl)
		executor := execmocks.NewMockExecutorIntegrator(ctrl)
		bus := messaging.NewMemoryBus()

		service := NewService(
			actionRepo,
			&fakeStrategyService{params: &domain.EffectiveParams{StrategyName: "Escalar Vendas", BudgetMultiplier: 1.5}},
			margin.NewService(testConfig()),
			executor,
			bus,
			testConfig(),
		)
		require.NoError(t, service.Start(context.Background()))

		executor.EXPECT().
			ListCampaigns(gomock.Any(), "ACC001").
			Return([]domain.Campaign{{ID: "CAMP01", Active: true}}, nil)
		actionRepo.EXPECT().Create(gomock.Any()).Return(nil)
		actionRepo.EXPECT().MarkDispatched(gomock.Any(), gomock.Any()).Return(true, nil)
		executor.EXPECT().
			ExecuteAction(gomock.Any(), gomock.Any()).
			Return(&execclient.ActionReceipt{Accepted: true}, nil)
		actionRepo.EXPECT().
			MarkCompleted(gomock.Any(), domain.ActionStatusAcknowledged, gomock.Any()).
			Return(true, nil)

		err := bus.Publish(context.Background(), messaging.TopicStrategySelection, &messaging.Message{
			Type:      messaging.MessageTypeStrategySelection,
			Timestamp: time.Now(),
			Details:   map[string]interface{}{"account_id": "ACC001"},
		})
		require.NoError(t, err)
		service.Wait()
	})

	t.Run("Alerta crítico com campanha identificada dispara ação corretiva", func(t *testing.T) {
		actionRepo := mocks.NewMockActionRepository(ctrl)
		executor := execmocks.NewMockExecutorIntegrator(ctrl)
		bus := messaging.NewMemoryBus()

		service := NewService(
			actionRepo,
			&fakeStrategyService{params: &domain.EffectiveParams{BudgetMultiplier: 1}},
			margin.NewService(testConfig()),
			executor,
			bus,
			testConfig(),
		)
		require.NoError(t, service.Start(context.Background()))

		actionRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(action *domain.AutomationAction) error {
				assert.Equal(t, domain.ActionPause, action.ActionType)
				assert.Equal(t, "CAMP01", action.Target.ID)
				assert.Equal(t, domain.TriggerAlert, action.TriggeredBy)
				return nil
			})
		actionRepo.EXPECT().MarkDispatched(gomock.Any(), gomock.Any()).Return(true, nil)
		executor.EXPECT().
			ExecuteAction(gomock.Any(), gomock.Any()).
			Return(&execclient.ActionReceipt{Accepted: true}, nil)
		actionRepo.EXPECT().
			MarkCompleted(gomock.Any(), domain.ActionStatusAcknowledged, gomock.Any()).
			Return(true, nil)

		err := bus.Publish(context.Background(), messaging.TopicEngineEvents, &messaging.Message{
			Type:      messaging.MessageTypeAlert,
			Timestamp: time.Now(),
			Details: map[string]interface{}{
				"event_id":    "EVT01",
				"account_id":  "ACC001",
				"campaign_id": "CAMP01",
				"severity":    "critical",
				"message":     "ACOS estourado",
			},
		})
		require.NoError(t, err)
		service.Wait()
	})

	t.Run("Alerta low no barramento é ignorado", func(t *testing.T) {
		actionRepo := mocks.NewMockActionRepository(ctrl)
		bus := messaging.NewMemoryBus()

		service := NewService(actionRepo, nil, nil, nil, bus, testConfig())
		require.NoError(t, service.Start(context.Background()))

		err := bus.Publish(context.Background(), messaging.TopicEngineEvents, &messaging.Message{
			Type:      messaging.MessageTypeAlert,
			Timestamp: time.Now(),
			Details: map[string]interface{}{
				"event_id":    "EVT02",
				"account_id":  "ACC001",
				"campaign_id": "CAMP01",
				"severity":    "low",
			},
		})
		require.NoError(t, err)
		service.Wait()
	})
}
