package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/alerting"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
)

func CreateAlertRule(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var input alerting.RuleInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		rule, err := service.CreateRule(r.Context(), &input)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": input.AccountID,
				"error":      err.Error(),
			}).Warn("alert-rules: failed to create rule")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, rule)
	})
}

func ListAlertRules(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := r.URL.Query().Get("account_id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id é obrigatório", nil)
			return
		}

		rules, err := service.ListRules(r.Context(), accountID)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("alert-rules: failed to list rules")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, rules)
	})
}

func UpdateAlertRule(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var input alerting.RuleInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		rule, err := service.UpdateRule(r.Context(), id, &input)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"rule_id": id,
				"error":   err.Error(),
			}).Warn("alert-rules: failed to update rule")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, rule)
	})
}

// ToggleRuleRequest habilita ou desabilita uma regra sem alterá-la
type ToggleRuleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func ToggleAlertRule(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var request ToggleRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		if err := service.ToggleRule(r.Context(), id, *request.Enabled); err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	})
}

func DeleteAlertRule(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteRule(r.Context(), id); err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	})
}
