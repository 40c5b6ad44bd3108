// Package handler expõe a API HTTP do motor: avaliação de métricas, CRUD de
// regras de alerta, ciclo de vida de eventos, catálogo de estratégias,
// datas especiais, validação de margem e consulta de ações de automação.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/alerting"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/automation"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/margin"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/strategy"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// validate valida os payloads de entrada anotados com tags `validate`
var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeUsecaseError traduz os erros dos casos de uso para os códigos
// estáveis da API. Erro não mapeado vira SRV_001 sem vazar detalhes.
func writeUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, alerting.ErrInvalidMetric),
		errors.Is(err, alerting.ErrInvalidCondition),
		errors.Is(err, alerting.ErrInvalidSeverity),
		errors.Is(err, alerting.ErrInvalidChannel),
		errors.Is(err, alerting.ErrInvalidThreshold),
		errors.Is(err, alerting.ErrInvalidCooldown):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRule, err.Error(), nil)

	case errors.Is(err, alerting.ErrRuleNotFound),
		errors.Is(err, alerting.ErrEventNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAlertNotFound, err.Error(), nil)

	case errors.Is(err, alerting.ErrInvalidStateTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidStateTransition, err.Error(), nil)

	case errors.Is(err, automation.ErrActionInFlight):
		apiErrors.WriteError(w, apiErrors.ErrActionInFlight, err.Error(), nil)

	case errors.Is(err, automation.ErrActionNotFound):
		apiErrors.WriteError(w, apiErrors.ErrActionNotFound, err.Error(), nil)

	case errors.Is(err, automation.ErrAccountRequired),
		errors.Is(err, automation.ErrTargetRequired),
		errors.Is(err, strategy.ErrAccountIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, strategy.ErrStrategyNotFound),
		errors.Is(err, strategy.ErrSpecialDateNotFound):
		apiErrors.WriteError(w, apiErrors.ErrStrategyNotFound, err.Error(), nil)

	case errors.Is(err, strategy.ErrNoActiveStrategy):
		apiErrors.WriteError(w, apiErrors.ErrNoActiveStrategy, err.Error(), nil)

	case errors.Is(err, strategy.ErrInvalidDateRange),
		errors.Is(err, strategy.ErrInvalidMultiplier):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, margin.ErrInvalidPrice),
		errors.Is(err, margin.ErrInvalidCost):
		apiErrors.WriteError(w, apiErrors.ErrInvalidMargin, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro interno do servidor", nil)
	}
}
