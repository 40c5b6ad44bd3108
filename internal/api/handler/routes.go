package handler

import (
	"net/http"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/api/handler/router"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/alerting"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/automation"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/margin"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/notifying"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/strategy"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(service alerting.AlertService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics/check",
			Method:  http.MethodPost,
			Handler: CheckMetrics(service),
		},
	}
}

func AlertRules(service alerting.AlertService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/alert-rules",
			Method:  http.MethodPost,
			Handler: CreateAlertRule(service),
		},
		{
			Path:    "/v1/alert-rules",
			Method:  http.MethodGet,
			Handler: ListAlertRules(service),
		},
		{
			Path:    "/v1/alert-rules/:id",
			Method:  http.MethodPut,
			Handler: UpdateAlertRule(service),
		},
		{
			Path:    "/v1/alert-rules/:id/toggle",
			Method:  http.MethodPost,
			Handler: ToggleAlertRule(service),
		},
		{
			Path:    "/v1/alert-rules/:id",
			Method:  http.MethodDelete,
			Handler: DeleteAlertRule(service),
		},
	}
}

func AlertEvents(service alerting.AlertService, notifyService notifying.NotifyService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/alert-events",
			Method:  http.MethodGet,
			Handler: ListAlertEvents(service),
		},
		{
			Path:    "/v1/alert-events/:id/acknowledge",
			Method:  http.MethodPost,
			Handler: AcknowledgeAlertEvent(service),
		},
		{
			Path:    "/v1/alert-events/:id/resolve",
			Method:  http.MethodPost,
			Handler: ResolveAlertEvent(service),
		},
		{
			Path:    "/v1/alert-events/:id/notifications",
			Method:  http.MethodGet,
			Handler: GetNotificationResults(notifyService),
		},
	}
}

func Strategies(service strategy.StrategyService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/strategies",
			Method:  http.MethodGet,
			Handler: ListStrategies(service),
		},
		{
			Path:    "/v1/strategies/:id",
			Method:  http.MethodGet,
			Handler: GetStrategy(service),
		},
		{
			Path:    "/v1/accounts/:id/strategy",
			Method:  http.MethodPost,
			Handler: ApplyStrategy(service),
		},
		{
			Path:    "/v1/accounts/:id/effective-params",
			Method:  http.MethodGet,
			Handler: GetEffectiveParams(service),
		},
	}
}

func SpecialDates(service strategy.StrategyService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/special-dates",
			Method:  http.MethodPost,
			Handler: CreateSpecialDate(service),
		},
		{
			Path:    "/v1/special-dates",
			Method:  http.MethodGet,
			Handler: ListSpecialDates(service),
		},
		{
			Path:    "/v1/special-dates/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSpecialDate(service),
		},
	}
}

func Margins(service margin.Validator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/margin/validate",
			Method:  http.MethodPost,
			Handler: ValidateMargin(service),
		},
	}
}

func Actions(service automation.Coordinator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/actions",
			Method:  http.MethodGet,
			Handler: ListActions(service),
		},
		{
			Path:    "/v1/accounts/:id/actions/propose",
			Method:  http.MethodPost,
			Handler: ProposeAction(service),
		},
		{
			Path:    "/v1/actions/:id/callback",
			Method:  http.MethodPost,
			Handler: ExecutorCallback(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
