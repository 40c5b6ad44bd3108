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

// ActionSweepConfig representa a configuração da varredura de ações expiradas
type ActionSweepConfig struct {
	CronSchedule            string
	DispatchDeadlineMinutes int
	Enabled                 bool
}

// ActionSweepService agenda a varredura de ações sem desfecho dentro do
// prazo: despachadas sem resposta do executor e pendentes cujo despacho
// falhou antes de ser registrado. A varredura fecha essas ações como failed
// e com isso libera o alvo para novas propostas.
type ActionSweepService struct {
	scheduler       *gocron.Scheduler
	config          ActionSweepConfig
	actionRepo      repository.ActionRepository
	sweepRunning    bool
	sweepMutex      sync.Mutex
	lastSweepAt     time.Time
	lastFailedCount int64
}

// NewActionSweepService cria uma nova instância do serviço de varredura de ações
func NewActionSweepService(
	actionRepo repository.ActionRepository,
	appConfig *config.Config,
) *ActionSweepService {
	sweepConfig := ActionSweepConfig{
		CronSchedule:            appConfig.ActionSweep.CronSchedule,
		DispatchDeadlineMinutes: appConfig.ActionSweep.DispatchDeadlineMinutes,
		Enabled:                 appConfig.ActionSweep.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":             sweepConfig.CronSchedule,
		"dispatch_deadline_minutes": sweepConfig.DispatchDeadlineMinutes,
		"enabled":                   sweepConfig.Enabled,
	}).Info("Configuração da varredura de ações expiradas carregada")

	return &ActionSweepService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     sweepConfig,
		actionRepo: actionRepo,
	}
}

// Start inicia o agendador
func (s *ActionSweepService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Varredura de ações expiradas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de varredura de ações expiradas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sweepStaleActions()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de ações expiradas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de varredura de ações expiradas")
		s.scheduler.Stop()
	}()

	return nil
}

// sweepStaleActions fecha como failed as ações sem desfecho há mais tempo que o prazo
func (s *ActionSweepService) sweepStaleActions() {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Varredura de ações já em andamento, ignorando")
		return
	}
	s.sweepRunning = true
	s.sweepMutex.Unlock()

	defer func() {
		s.sweepMutex.Lock()
		s.sweepRunning = false
		s.sweepMutex.Unlock()
	}()

	deadline := time.Duration(s.config.DispatchDeadlineMinutes) * time.Minute
	logrus.WithField("deadline", deadline.String()).Info("Iniciando varredura de ações expiradas")

	failed, err := s.actionRepo.FailStale(deadline)
	if err != nil {
		logrus.WithError(err).Error("Erro ao varrer ações expiradas")
		return
	}

	s.lastSweepAt = time.Now()
	s.lastFailedCount = failed

	if failed > 0 {
		logrus.WithField("failed", failed).Warn("Ações sem desfecho dentro do prazo fechadas como failed")
	} else {
		logrus.Debug("Nenhuma ação expirada encontrada na varredura")
	}
}

// TriggerManualSweep inicia manualmente uma varredura de ações expiradas
func (s *ActionSweepService) TriggerManualSweep() {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Varredura de ações já em andamento, ignorando solicitação manual")
		return
	}
	s.sweepMutex.Unlock()

	logrus.Info("Iniciando varredura manual de ações expiradas")
	go s.sweepStaleActions()
}

// GetStatus retorna o status atual do agendador
func (s *ActionSweepService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":                   s.config.Enabled,
		"cron":                      s.config.CronSchedule,
		"dispatch_deadline_minutes": s.config.DispatchDeadlineMinutes,
		"last_sweep_at":             s.lastSweepAt,
		"last_failed_count":         s.lastFailedCount,
	}
}
