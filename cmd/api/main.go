package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/database/postgres"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/integrator/campaignexec"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/integrator/campaignexec/execclient"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/messaging"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/repository"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/api"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/scheduler"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/alerting"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/automation"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/margin"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/notifying"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/strategy"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	bus := newBus(ctx, cfg)
	defer bus.Close()

	alertRuleRepo := repository.NewAlertRuleRepository(pgConn)
	alertEventRepo := repository.NewAlertEventRepository(pgConn)
	strategyRepo := repository.NewStrategyRepository(pgConn)
	specialDateRepo := repository.NewSpecialDateRepository(pgConn)
	actionRepo := repository.NewActionRepository(pgConn)
	notificationRepo := repository.NewNotificationRepository(pgConn)

	executorClient := execclient.NewClient(cfg)
	executorIntegrator := campaignexec.New(cfg, executorClient)

	notifyService := notifying.NewService(
		notificationRepo,
		cfg,
		notifying.NewEmailChannel(cfg),
		notifying.NewWebhookChannel(cfg),
		notifying.NewInAppChannel(bus),
	)

	alertService := alerting.NewService(alertRuleRepo, alertEventRepo, notifyService, bus, cfg)
	strategyService := strategy.NewService(strategyRepo, specialDateRepo, bus)
	marginValidator := margin.NewService(cfg)

	coordinator := automation.NewService(
		actionRepo,
		strategyService,
		marginValidator,
		executorIntegrator,
		bus,
		cfg,
	)

	// O coordenador reage às seleções de estratégia e aos alertas graves
	// publicados no barramento
	if err := coordinator.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao assinar os tópicos do barramento")
	}

	alertRetentionService := scheduler.NewAlertRetentionService(alertEventRepo, cfg)
	actionSweepService := scheduler.NewActionSweepService(actionRepo, cfg)

	if err := alertRetentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de expurgo de alertas")
	} else {
		logrus.Info("Agendador de expurgo de alertas iniciado com sucesso")
	}

	if err := actionSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de varredura de ações")
	} else {
		logrus.Info("Agendador de varredura de ações iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		alertService,
		strategyService,
		marginValidator,
		coordinator,
		notifyService,
		alertRetentionService,
		actionSweepService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	// Aguarda entregas e despachos em andamento antes de sair
	notifyService.Wait()
	coordinator.Wait()
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newBus escolhe o barramento: Redis quando habilitado, senão em memória
// (processo único)
func newBus(ctx context.Context, cfg *config.Config) messaging.Bus {
	if !cfg.Redis.Enabled {
		logrus.Info("Barramento em memória (Redis desabilitado por configuração)")
		return messaging.NewMemoryBus()
	}

	bus, err := messaging.NewRedisBus(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("Conexão com Redis estabelecida com sucesso")
	return bus
}
