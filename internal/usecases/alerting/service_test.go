package alerting

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

// fakeDispatcher registra os despachos pedidos pelo motor sem entregar nada
type fakeDispatcher struct {
	events   []*domain.AlertEvent
	channels [][]domain.ChannelType
}

func (d *fakeDispatcher) Dispatch(_ context.Context, event *domain.AlertEvent, channels []domain.ChannelType) {
	d.events = append(d.events, event)
	d.channels = append(d.channels, channels)
}

func newTestRule(id string) *domain.AlertRule {
	return &domain.AlertRule{
		ID:              id,
		AccountID:       "ACC001",
		Name:            "ACOS alto",
		Metric:          domain.MetricACOS,
		Condition:       domain.ComparatorGT,
		Threshold:       15,
		Severity:        domain.SeverityHigh,
		Channels:        []domain.ChannelType{domain.ChannelEmail, domain.ChannelInApp},
		CooldownMinutes: 30,
		Enabled:         true,
	}
}

func TestService_Evaluate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sampleTime := time.Date(2025, 11, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		sample   *domain.MetricSample
		setup    func(ruleRepo *mocks.MockAlertRuleRepository, eventRepo *mocks.MockAlertEventRepository)
		validate func(t *testing.T, events []*domain.AlertEvent, dispatcher *fakeDispatcher, published []*messaging.Message)
	}{
		{
			name: "Regra satisfeita fora de cooldown dispara evento",
			sample: &domain.MetricSample{
				AccountID:  "ACC001",
				CampaignID: "CAMP01",
				Metric:     domain.MetricACOS,
				Value:      18.5,
				Timestamp:  sampleTime,
			},
			setup: func(ruleRepo *mocks.MockAlertRuleRepository, eventRepo *mocks.MockAlertEventRepository) {
				rule := newTestRule("RULE01")
				ruleRepo.EXPECT().
					ListEnabledByAccountAndMetric("ACC001", domain.MetricACOS).
					Return([]*domain.AlertRule{rule}, nil)
				ruleRepo.EXPECT().
					TryAcquireCooldown("RULE01", sampleTime, 30*time.Minute).
					Return(true, nil)
				eventRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil)
			},
			validate: func(t *testing.T, events []*domain.AlertEvent, dispatcher *fakeDispatcher, published []*messaging.Message) {
				require.Len(t, events, 1)
				event := events[0]
				assert.Equal(t, "RULE01", event.RuleID)
				assert.Equal(t, domain.AlertStateTriggered, event.State)
				assert.Equal(t, 18.5, event.ActualValue)
				assert.Equal(t, domain.SeverityHigh, event.Severity)
				assert.Contains(t, event.Message, "acima do limite")
				assert.Equal(t, sampleTime, event.CreatedAt)

				// Notificação despachada para os canais da regra
				require.Len(t, dispatcher.events, 1)
				assert.Equal(t, []domain.ChannelType{domain.ChannelEmail, domain.ChannelInApp}, dispatcher.channels[0])

				// Alerta publicado no barramento com a campanha da amostra
				require.Len(t, published, 1)
				assert.Equal(t, messaging.MessageTypeAlert, published[0].Type)
				assert.Equal(t, "CAMP01", published[0].Details["campaign_id"])
			},
		},
		{
			name: "Regra em cooldown não dispara de novo",
			sample: &domain.MetricSample{
				AccountID: "ACC001",
				Metric:    domain.MetricACOS,
				Value:     18.5,
				Timestamp: sampleTime,
			},
			setup: func(ruleRepo *mocks.MockAlertRuleRepository, eventRepo *mocks.MockAlertEventRepository) {
				rule := newTestRule("RULE01")
				ruleRepo.EXPECT().
					ListEnabledByAccountAndMetric("ACC001", domain.MetricACOS).
					Return([]*domain.AlertRule{rule}, nil)
				ruleRepo.EXPECT().
					TryAcquireCooldown("RULE01", sampleTime, 30*time.Minute).
					Return(false, nil)
			},
			validate: func(t *testing.T, events []*domain.AlertEvent, dispatcher *fakeDispatcher, published []*messaging.Message) {
				assert.Empty(t, events)
				assert.Empty(t, dispatcher.events)
				assert.Empty(t, published)
			},
		},
		{
			name: "Condição não satisfeita nem consulta o cooldown",
			sample: &domain.MetricSample{
				AccountID: "ACC001",
				Metric:    domain.MetricACOS,
				Value:     12.0,
				Timestamp: sampleTime,
			},
			setup: func(ruleRepo *mocks.MockAlertRuleRepository, eventRepo *mocks.MockAlertEventRepository) {
				rule := newTestRule("RULE01")
				ruleRepo.EXPECT().
					ListEnabledByAccountAndMetric("ACC001", domain.MetricACOS).
					Return([]*domain.AlertRule{rule}, nil)
			},
			validate: func(t *testing.T, events []*domain.AlertEvent, dispatcher *fakeDispatcher, published []*messaging.Message) {
				assert.Empty(t, events)
				assert.Empty(t, dispatcher.events)
			},
		},
		{
			name: "Métrica desconhecida é ignorada sem erro",
			sample: &domain.MetricSample{
				AccountID: "ACC001",
				Metric:    domain.MetricName("clicks_per_second"),
				Value:     99,
				Timestamp: sampleTime,
			},
			setup: func(ruleRepo *mocks.MockAlertRuleRepository, eventRepo *mocks.MockAlertEventRepository) {
				// Nenhuma chamada ao repositório é esperada
			},
			validate: func(t *testing.T, events []*domain.AlertEvent, dispatcher *fakeDispatcher, published []*messaging.Message) {
				assert.Empty(t, events)
			},
		},
		{
			name: "Cada regra satisfeita gera um evento independente",
			sample: &domain.MetricSample{
				AccountID: "ACC001",
				Metric:    domain.MetricACOS,
				Value:     25.0,
				Timestamp: sampleTime,
			},
			setup: func(ruleRepo *mocks.MockAlertRuleRepository, eventRepo *mocks.MockAlertEventRepository) {
				ruleA := newTestRule("RULE01")
				ruleB := newTestRule("RULE02")
				ruleB.Threshold = 20
				ruleB.Severity = domain.SeverityCritical

				ruleRepo.EXPECT().
					ListEnabledByAccountAndMetric("ACC001", domain.MetricACOS).
					Return([]*domain.AlertRule{ruleA, ruleB}, nil)
				ruleRepo.EXPECT().
					TryAcquireCooldown("RULE01", sampleTime, 30*time.Minute).
					Return(true, nil)
				ruleRepo.EXPECT().
					TryAcquireCooldown("RULE02", sampleTime, 30*time.Minute).
					Return(true, nil)
				eventRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil).
					Times(2)
			},
			validate: func(t *testing.T, events []*domain.AlertEvent, dispatcher *fakeDispatcher, published []*messaging.Message) {
				require.Len(t, events, 2)
				assert.Equal(t, "RULE01", events[0].RuleID)
				assert.Equal(t, "RULE02", events[1].RuleID)
				assert.NotEqual(t, events[0].ID, events[1].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ruleRepo := mocks.NewMockAlertRuleRepository(ctrl)
			eventRepo := mocks.NewMockAlertEventRepository(ctrl)
			dispatcher := &fakeDispatcher{}
			bus := messaging.NewMemoryBus()

			var published []*messaging.Message
			err := bus.Subscribe(context.Background(), messaging.TopicEngineEvents, func(_ context.Context, msg *messaging.Message) {
				published = append(published, msg)
			})
			require.NoError(t, err)

			service := &Service{
				ruleRepo:        ruleRepo,
				eventRepo:       eventRepo,
				dispatcher:      dispatcher,
				bus:             bus,
				defaultCooldown: 60,
			}

			tt.setup(ruleRepo, eventRepo)

			events, err := service.Evaluate(context.Background(), tt.sample)
			require.NoError(t, err)

			tt.validate(t, events, dispatcher, published)
		})
	}
}

// TestService_CooldownWindow cobre a aritmética da janela de silêncio de
// ponta a ponta: com cooldown de 60 minutos, amostras 30 minutos depois do
// disparo não geram evento novo; 61 minutos depois geram.
func TestService_CooldownWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ruleRepo := mocks.NewMockAlertRuleRepository(ctrl)
	eventRepo := mocks.NewMockAlertEventRepository(ctrl)

	rule := newTestRule("RULE01")
	rule.CooldownMinutes = 60

	// Reproduz a semântica do check-and-set do repositório: só avança o
	// last_triggered_at quando ele está a um cooldown inteiro no passado
	var lastTriggered *time.Time
	ruleRepo.EXPECT().
		ListEnabledByAccountAndMetric("ACC001", domain.MetricACOS).
		DoAndReturn(func(string, domain.MetricName) ([]*domain.AlertRule, error) {
			listed := *rule
			listed.LastTriggeredAt = lastTriggered
			return []*domain.AlertRule{&listed}, nil
		}).
		AnyTimes()
	ruleRepo.EXPECT().
		TryAcquireCooldown("RULE01", gomock.Any(), 60*time.Minute).
		DoAndReturn(func(_ string, now time.Time, cooldown time.Duration) (bool, error) {
			if lastTriggered != nil && lastTriggered.After(now.Add(-cooldown)) {
				return false, nil
			}
			acquired := now
			lastTriggered = &acquired
			return true, nil
		}).
		AnyTimes()
	eventRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		AnyTimes()

	service := &Service{
		ruleRepo:   ruleRepo,
		eventRepo:  eventRepo,
		dispatcher: &fakeDispatcher{},
		bus:        messaging.NewMemoryBus(),
	}

	evaluateAt := func(at time.Time) int {
		events, err := service.Evaluate(context.Background(), &domain.MetricSample{
			AccountID: "ACC001",
			Metric:    domain.MetricACOS,
			Value:     18.5,
			Timestamp: at,
		})
		require.NoError(t, err)
		return len(events)
	}

	start := time.Date(2025, 11, 28, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, evaluateAt(start), "primeira amostra dispara")
	assert.Equal(t, 0, evaluateAt(start.Add(30*time.Minute)), "30 minutos depois ainda está em cooldown")
	assert.Equal(t, 1, evaluateAt(start.Add(61*time.Minute)), "61 minutos depois a janela expirou")
}

func TestService_Transitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		run      func(service *Service) (*domain.AlertEvent, error)
		setup    func(eventRepo *mocks.MockAlertEventRepository)
		validate func(t *testing.T, event *domain.AlertEvent, err error)
	}{
		{
			name: "Acknowledge de evento triggered",
			run: func(service *Service) (*domain.AlertEvent, error) {
				return service.Acknowledge(context.Background(), "EVT01")
			},
			setup: func(eventRepo *mocks.MockAlertEventRepository) {
				eventRepo.EXPECT().
					Acknowledge("EVT01", gomock.Any()).
					Return(true, nil)
				eventRepo.EXPECT().
					GetByID("EVT01").
					Return(&domain.AlertEvent{ID: "EVT01", State: domain.AlertStateAcknowledged}, nil)
			},
			validate: func(t *testing.T, event *domain.AlertEvent, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.AlertStateAcknowledged, event.State)
			},
		},
		{
			name: "Resolve direto de triggered, sem passar por acknowledged",
			run: func(service *Service) (*domain.AlertEvent, error) {
				return service.Resolve(context.Background(), "EVT01")
			},
			setup: func(eventRepo *mocks.MockAlertEventRepository) {
				eventRepo.EXPECT().
					Resolve("EVT01", gomock.Any()).
					Return(true, nil)
				eventRepo.EXPECT().
					GetByID("EVT01").
					Return(&domain.AlertEvent{ID: "EVT01", State: domain.AlertStateResolved}, nil)
			},
			validate: func(t *testing.T, event *domain.AlertEvent, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.AlertStateResolved, event.State)
			},
		},
		{
			name: "Acknowledge depois de resolved é transição inválida",
			run: func(service *Service) (*domain.AlertEvent, error) {
				return service.Acknowledge(context.Background(), "EVT01")
			},
			setup: func(eventRepo *mocks.MockAlertEventRepository) {
				eventRepo.EXPECT().
					Acknowledge("EVT01", gomock.Any()).
					Return(false, nil)
				eventRepo.EXPECT().
					GetByID("EVT01").
					Return(&domain.AlertEvent{ID: "EVT01", State: domain.AlertStateResolved}, nil)
			},
			validate: func(t *testing.T, event *domain.AlertEvent, err error) {
				assert.ErrorIs(t, err, ErrInvalidStateTransition)
				assert.Nil(t, event)
			},
		},
		{
			name: "Evento inexistente",
			run: func(service *Service) (*domain.AlertEvent, error) {
				return service.Resolve(context.Background(), "EVT99")
			},
			setup: func(eventRepo *mocks.MockAlertEventRepository) {
				eventRepo.EXPECT().
					Resolve("EVT99", gomock.Any()).
					Return(false, nil)
				eventRepo.EXPECT().
					GetByID("EVT99").
					Return(nil, nil)
			},
			validate: func(t *testing.T, event *domain.AlertEvent, err error) {
				assert.ErrorIs(t, err, ErrEventNotFound)
				assert.Nil(t, event)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := mocks.NewMockAlertEventRepository(ctrl)
			service := &Service{
				eventRepo: eventRepo,
				bus:       messaging.NewMemoryBus(),
			}

			tt.setup(eventRepo)

			event, err := tt.run(service)
			tt.validate(t, event, err)
		})
	}
}

func TestService_buildRule(t *testing.T) {
	service := &Service{defaultCooldown: 60}

	validInput := func() *RuleInput {
		return &RuleInput{
			AccountID: "ACC001",
			Name:      "ACOS alto",
			Metric:    "acos",
			Condition: ">",
			Threshold: 15,
			Severity:  "high",
			Channels:  []string{"email", "in_app"},
		}
	}

	tests := []struct {
		name     string
		mutate   func(input *RuleInput)
		wantErr  error
		validate func(t *testing.T, rule *domain.AlertRule)
	}{
		{
			name:   "Entrada válida com cooldown padrão e habilitada por omissão",
			mutate: func(input *RuleInput) {},
			validate: func(t *testing.T, rule *domain.AlertRule) {
				assert.Equal(t, domain.MetricACOS, rule.Metric)
				assert.Equal(t, domain.ComparatorGT, rule.Condition)
				assert.Equal(t, 60, rule.CooldownMinutes)
				assert.True(t, rule.Enabled)
			},
		},
		{
			name: "Comparador em forma textual também é aceito",
			mutate: func(input *RuleInput) {
				input.Condition = "gte"
			},
			validate: func(t *testing.T, rule *domain.AlertRule) {
				assert.Equal(t, domain.ComparatorGTE, rule.Condition)
			},
		},
		{
			name: "Métrica fora do conjunto fechado",
			mutate: func(input *RuleInput) {
				input.Metric = "likes"
			},
			wantErr: ErrInvalidMetric,
		},
		{
			name: "Comparador desconhecido",
			mutate: func(input *RuleInput) {
				input.Condition = "~="
			},
			wantErr: ErrInvalidCondition,
		},
		{
			name: "Severidade desconhecida",
			mutate: func(input *RuleInput) {
				input.Severity = "urgent"
			},
			wantErr: ErrInvalidSeverity,
		},
		{
			name: "Canal desconhecido",
			mutate: func(input *RuleInput) {
				input.Channels = []string{"sms"}
			},
			wantErr: ErrInvalidChannel,
		},
		{
			name: "Threshold negativo",
			mutate: func(input *RuleInput) {
				input.Threshold = -1
			},
			wantErr: ErrInvalidThreshold,
		},
		{
			name: "Cooldown negativo",
			mutate: func(input *RuleInput) {
				input.CooldownMinutes = -5
			},
			wantErr: ErrInvalidCooldown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			rule, err := service.buildRule(input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rule)
				return
			}

			require.NoError(t, err)
			tt.validate(t, rule)
		})
	}
}
