package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
)

// AlertRetentionConfig representa a configuração do expurgo de alertas resolvidos
type AlertRetentionConfig struct {
	CronSchedule  string
	RetentionDays int
	Enabled       bool
}

// AlertRetentionService agenda o expurgo periódico de eventos de alerta
// resolvidos há mais tempo que a janela de retenção. Eventos triggered ou
// acknowledged nunca são expurgados, qualquer que seja a idade.
type AlertRetentionService struct {
	scheduler       *gocron.Scheduler
	config          AlertRetentionConfig
	eventRepo       repository.AlertEventRepository
	purgeRunning    bool
	purgeMutex      sync.Mutex
	lastPurgeAt     time.Time
	lastPurgedCount int64
}

// NewAlertRetentionService cria uma nova instância do serviço de retenção de alertas
func NewAlertRetentionService(
	eventRepo repository.AlertEventRepository,
	appConfig *config.Config,
) *AlertRetentionService {
	retentionConfig := AlertRetentionConfig{
		CronSchedule:  appConfig.AlertRetention.CronSchedule,
		RetentionDays: appConfig.AlertRetention.RetentionDays,
		Enabled:       appConfig.AlertRetention.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.RetentionDays,
		"enabled":        retentionConfig.Enabled,
	}).Info("Configuração do expurgo de alertas resolvidos carregada")

	return &AlertRetentionService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    retentionConfig,
		eventRepo: eventRepo,
	}
}

// Start inicia o agendador
func (s *AlertRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Expurgo de alertas resolvidos desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de expurgo de alertas resolvidos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.purgeResolvedAlerts()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar expurgo de alertas resolvidos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de expurgo de alertas resolvidos")
		s.scheduler.Stop()
	}()

	return nil
}

// purgeResolvedAlerts remove eventos resolvidos mais antigos que a janela de retenção
func (s *AlertRetentionService) purgeResolvedAlerts() {
	s.purgeMutex.Lock()
	if s.purgeRunning {
		s.purgeMutex.Unlock()
		logrus.Info("Expurgo de alertas já em andamento, ignorando")
		return
	}
	s.purgeRunning = true
	s.purgeMutex.Unlock()

	defer func() {
		s.purgeMutex.Lock()
		s.purgeRunning = false
		s.purgeMutex.Unlock()
	}()

	startTime := time.Now()
	logrus.WithField("retention_days", s.config.RetentionDays).Info("Iniciando expurgo de alertas resolvidos")

	purged, err := s.eventRepo.DeleteResolvedOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao expurgar alertas resolvidos")
		return
	}

	s.lastPurgeAt = time.Now()
	s.lastPurgedCount = purged

	logrus.WithFields(logrus.Fields{
		"purged":   purged,
		"duration": time.Since(startTime).String(),
	}).Info("Expurgo de alertas resolvidos concluído")
}

// TriggerManualPurge inicia manualmente um expurgo de alertas resolvidos
func (s *AlertRetentionService) TriggerManualPurge() {
	s.purgeMutex.Lock()
	if s.purgeRunning {
		s.purgeMutex.Unlock()
		logrus.Info("Expurgo de alertas já em andamento, ignorando solicitação manual")
		return
	}
	s.purgeMutex.Unlock()

	logrus.Info("Iniciando expurgo manual de alertas resolvidos")
	go s.purgeResolvedAlerts()
}

// GetStatus retorna o status atual do agendador
func (s *AlertRetentionService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":           s.config.Enabled,
		"cron":              s.config.CronSchedule,
		"retention_days":    s.config.RetentionDays,
		"last_purge_at":     s.lastPurgeAt,
		"last_purged_count": s.lastPurgedCount,
	}
}
