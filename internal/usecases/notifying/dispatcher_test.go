package notifying

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

// fakeChannel falha as primeiras failures tentativas e depois entrega
type fakeChannel struct {
	channelType domain.ChannelType
	failures    int

	mu       sync.Mutex
	attempts int
}

func (c *fakeChannel) Type() domain.ChannelType {
	return c.channelType
}

func (c *fakeChannel) Send(_ context.Context, _ *domain.AlertEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attempts++
	if c.attempts <= c.failures {
		return errors.New("gateway indisponível")
	}
	return nil
}

func (c *fakeChannel) totalAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// fakeNotificationRepo guarda o último resultado por par (evento, canal)
type fakeNotificationRepo struct {
	mu      sync.Mutex
	results map[string]*domain.DispatchResult
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{results: make(map[string]*domain.DispatchResult)}
}

func (r *fakeNotificationRepo) SaveResult(result *domain.DispatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *result
	r.results[result.EventID+"|"+string(result.Channel)] = &saved
	return nil
}

func (r *fakeNotificationRepo) ListByEvent(eventID string) ([]*domain.DispatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]*domain.DispatchResult, 0)
	for _, result := range r.results {
		if result.EventID == eventID {
			results = append(results, result)
		}
	}
	return results, nil
}

func (r *fakeNotificationRepo) get(eventID string, channel domain.ChannelType) *domain.DispatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results[eventID+"|"+string(channel)]
}

func newTestService(repo *fakeNotificationRepo, channels ...Channel) *Service {
	byType := make(map[domain.ChannelType]Channel, len(channels))
	for _, channel := range channels {
		byType[channel.Type()] = channel
	}

	return &Service{
		channels:    byType,
		repo:        repo,
		maxAttempts: 3,
		timeout:     time.Second,
		backoffBase: time.Millisecond, // Backoff curto para os testes
		dedupWindow: 5 * time.Minute,
		recent:      make(map[string]time.Time),
	}
}

func newTestEvent(id string) *domain.AlertEvent {
	return &domain.AlertEvent{
		ID:        id,
		AccountID: "ACC001",
		Metric:    domain.MetricACOS,
		Severity:  domain.SeverityHigh,
		Message:   "ACOS 18.50 acima do limite 15.00",
		State:     domain.AlertStateTriggered,
		CreatedAt: time.Now(),
	}
}

func TestService_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		channels []*fakeChannel
		dispatch []domain.ChannelType
		validate func(t *testing.T, repo *fakeNotificationRepo, channels []*fakeChannel)
	}{
		{
			name: "Entrega na primeira tentativa",
			channels: []*fakeChannel{
				{channelType: domain.ChannelEmail},
			},
			dispatch: []domain.ChannelType{domain.ChannelEmail},
			validate: func(t *testing.T, repo *fakeNotificationRepo, channels []*fakeChannel) {
				result := repo.get("EVT01", domain.ChannelEmail)
				require.NotNil(t, result)
				assert.Equal(t, domain.DispatchStatusSent, result.Status)
				assert.Equal(t, 1, result.Attempts)
				assert.Empty(t, result.LastError)
			},
		},
		{
			name: "Falha transitória entrega após retry com backoff",
			channels: []*fakeChannel{
				{channelType: domain.ChannelEmail, failures: 2},
			},
			dispatch: []domain.ChannelType{domain.ChannelEmail},
			validate: func(t *testing.T, repo *fakeNotificationRepo, channels []*fakeChannel) {
				result := repo.get("EVT01", domain.ChannelEmail)
				require.NotNil(t, result)
				assert.Equal(t, domain.DispatchStatusSent, result.Status)
				assert.Equal(t, 3, result.Attempts)
			},
		},
		{
			name: "Retries esgotados terminam em failed com o último erro",
			channels: []*fakeChannel{
				{channelType: domain.ChannelWebhook, failures: 10},
			},
			dispatch: []domain.ChannelType{domain.ChannelWebhook},
			validate: func(t *testing.T, repo *fakeNotificationRepo, channels []*fakeChannel) {
				result := repo.get("EVT01", domain.ChannelWebhook)
				require.NotNil(t, result)
				assert.Equal(t, domain.DispatchStatusFailed, result.Status)
				assert.Equal(t, 3, result.Attempts)
				assert.Equal(t, "gateway indisponível", result.LastError)
				// Nunca passa de maxAttempts
				assert.Equal(t, 3, channels[0].totalAttempts())
			},
		},
		{
			name: "Falha em um canal não bloqueia o outro",
			channels: []*fakeChannel{
				{channelType: domain.ChannelEmail, failures: 10},
				{channelType: domain.ChannelWebhook},
			},
			dispatch: []domain.ChannelType{domain.ChannelEmail, domain.ChannelWebhook},
			validate: func(t *testing.T, repo *fakeNotificationRepo, channels []*fakeChannel) {
				email := repo.get("EVT01", domain.ChannelEmail)
				webhook := repo.get("EVT01", domain.ChannelWebhook)
				require.NotNil(t, email)
				require.NotNil(t, webhook)
				assert.Equal(t, domain.DispatchStatusFailed, email.Status)
				assert.Equal(t, domain.DispatchStatusSent, webhook.Status)
			},
		},
		{
			name: "Canal não configurado é pulado sem registro",
			channels: []*fakeChannel{
				{channelType: domain.ChannelEmail},
			},
			dispatch: []domain.ChannelType{domain.ChannelInApp},
			validate: func(t *testing.T, repo *fakeNotificationRepo, channels []*fakeChannel) {
				assert.Nil(t, repo.get("EVT01", domain.ChannelInApp))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeNotificationRepo()

			channels := make([]Channel, 0, len(tt.channels))
			for _, channel := range tt.channels {
				channels = append(channels, channel)
			}

			service := newTestService(repo, channels...)

			service.Dispatch(context.Background(), newTestEvent("EVT01"), tt.dispatch)
			service.Wait()

			tt.validate(t, repo, tt.channels)
		})
	}
}

func TestService_DispatchDeduplication(t *testing.T) {
	repo := newFakeNotificationRepo()
	channel := &fakeChannel{channelType: domain.ChannelEmail}
	service := newTestService(repo, channel)

	event := newTestEvent("EVT01")

	// Dois despachos do mesmo evento dentro da janela: só o primeiro entrega
	service.Dispatch(context.Background(), event, []domain.ChannelType{domain.ChannelEmail})
	service.Dispatch(context.Background(), event, []domain.ChannelType{domain.ChannelEmail})
	service.Wait()

	assert.Equal(t, 1, channel.totalAttempts())

	// Evento diferente não é deduplicado
	service.Dispatch(context.Background(), newTestEvent("EVT02"), []domain.ChannelType{domain.ChannelEmail})
	service.Wait()

	assert.Equal(t, 2, channel.totalAttempts())
}
