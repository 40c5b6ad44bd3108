package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/api/handler"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/api/handler/router"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/scheduler"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/alerting"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/automation"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/margin"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/notifying"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/strategy"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	alertService alerting.AlertService,
	strategyService strategy.StrategyService,
	marginValidator margin.Validator,
	coordinator automation.Coordinator,
	notifyService notifying.NotifyService,
	alertRetentionService *scheduler.AlertRetentionService,
	actionSweepService *scheduler.ActionSweepService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		AlertRetentionService: alertRetentionService,
		ActionSweepService:    actionSweepService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(alertService)...),
		router.WithRoutes(handler.AlertRules(alertService)...),
		router.WithRoutes(handler.AlertEvents(alertService, notifyService)...),
		router.WithRoutes(handler.Strategies(strategyService)...),
		router.WithRoutes(handler.SpecialDates(strategyService)...),
		router.WithRoutes(handler.Margins(marginValidator)...),
		router.WithRoutes(handler.Actions(coordinator)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.ServiceToken(config.Auth.ServiceToken),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
