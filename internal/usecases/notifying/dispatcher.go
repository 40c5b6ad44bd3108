// Package notifying implementa o despachante de notificações: fan-out por
// canal com retries limitados e backoff exponencial, deduplicação por
// (evento, canal) e registro consultável do resultado terminal. Falha de
// canal nunca volta para quem disparou o alerta.
package notifying

import (
	"context"
	"sync"
	"time"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
)

// Channel é um adaptador de canal de notificação (email, webhook, in-app)
type Channel interface {
	Type() domain.ChannelType
	Send(ctx context.Context, event *domain.AlertEvent) error
}

type NotifyService interface {
	Dispatch(ctx context.Context, event *domain.AlertEvent, channels []domain.ChannelType)
	Results(eventID string) ([]*domain.DispatchResult, error)
	Wait()
}

type Service struct {
	channels    map[domain.ChannelType]Channel
	repo        repository.NotificationRepository
	maxAttempts int
	timeout     time.Duration
	backoffBase time.Duration
	dedupWindow time.Duration

	mu     sync.Mutex
	recent map[string]time.Time // dedup por (event_id, canal)
	wg     sync.WaitGroup
}

func NewService(
	repo repository.NotificationRepository,
	cfg *config.Config,
	channels ...Channel,
) *Service {
	byType := make(map[domain.ChannelType]Channel, len(channels))
	for _, channel := range channels {
		byType[channel.Type()] = channel
	}

	return &Service{
		channels:    byType,
		repo:        repo,
		maxAttempts: cfg.Notification.MaxAttempts,
		timeout:     time.Duration(cfg.Notification.TimeoutSeconds) * time.Second,
		backoffBase: time.Second,
		dedupWindow: time.Duration(cfg.Notification.DedupWindowMinutes) * time.Minute,
		recent:      make(map[string]time.Time),
	}
}

// Dispatch faz o fan-out do evento para os canais pedidos. Cada canal roda
// em sua própria goroutine: a falha de um não bloqueia os demais, e o
// chamador nunca espera pela entrega.
func (s *Service) Dispatch(ctx context.Context, event *domain.AlertEvent, channels []domain.ChannelType) {
	logger := log.ForContext(ctx)

	for _, channelType := range channels {
		channel, ok := s.channels[channelType]
		if !ok {
			logger.WithFields(log.Fields{
				"event_id": event.ID,
				"channel":  channelType,
			}).Warn("notifying: channel not configured, skipping")
			continue
		}

		if !s.markDispatched(event.ID, channelType) {
			logger.WithFields(log.Fields{
				"event_id": event.ID,
				"channel":  channelType,
			}).Debug("notifying: duplicate dispatch suppressed")
			continue
		}

		s.wg.Add(1)
		go s.deliver(event, channel)
	}
}

// markDispatched é o check-and-set de deduplicação: devolve false se o par
// (evento, canal) já foi despachado dentro da janela.
func (s *Service) markDispatched(eventID string, channel domain.ChannelType) bool {
	key := eventID + "|" + string(channel)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.recent[key]; ok && now.Sub(last) < s.dedupWindow {
		return false
	}
	s.recent[key] = now

	// Limpeza oportunista de chaves expiradas
	for k, t := range s.recent {
		if now.Sub(t) >= s.dedupWindow {
			delete(s.recent, k)
		}
	}

	return true
}

// deliver tenta a entrega com retries limitados e backoff exponencial.
// O resultado terminal (sent ou failed) fica registrado e consultável.
func (s *Service) deliver(event *domain.AlertEvent, channel Channel) {
	defer s.wg.Done()

	result := &domain.DispatchResult{
		EventID: event.ID,
		Channel: channel.Type(),
		Status:  domain.DispatchStatusPending,
	}
	s.saveResult(result)

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		result.Attempts = attempt

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		err := channel.Send(ctx, event)
		cancel()

		if err == nil {
			result.Status = domain.DispatchStatusSent
			result.LastError = ""
			s.saveResult(result)

			log.L.WithFields(log.Fields{
				"event_id": event.ID,
				"channel":  channel.Type(),
				"attempts": attempt,
			}).Info("notifying: notification delivered")
			return
		}

		lastErr = err
		log.L.WithFields(log.Fields{
			"event_id": event.ID,
			"channel":  channel.Type(),
			"attempt":  attempt,
			"error":    err.Error(),
		}).Warn("notifying: delivery attempt failed")

		if attempt < s.maxAttempts {
			time.Sleep(s.backoffBase << (attempt - 1))
		}
	}

	// Retries esgotados: falha terminal, registrada mas nunca propagada
	result.Status = domain.DispatchStatusFailed
	result.LastError = lastErr.Error()
	s.saveResult(result)

	log.L.WithFields(log.Fields{
		"event_id": event.ID,
		"channel":  channel.Type(),
		"attempts": s.maxAttempts,
		"error":    lastErr.Error(),
	}).Error("notifying: delivery failed permanently")
}

func (s *Service) saveResult(result *domain.DispatchResult) {
	if err := s.repo.SaveResult(result); err != nil {
		log.L.WithFields(log.Fields{
			"event_id": result.EventID,
			"channel":  result.Channel,
			"error":    err.Error(),
		}).Error("notifying: failed to persist dispatch result")
	}
}

func (s *Service) Results(eventID string) ([]*domain.DispatchResult, error) {
	return s.repo.ListByEvent(eventID)
}

// Wait bloqueia até todas as entregas em andamento terminarem. Usado no
// desligamento gracioso e nos testes.
func (s *Service) Wait() {
	s.wg.Wait()
}
