package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/automation"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
)

func ListActions(service automation.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := r.URL.Query().Get("account_id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id é obrigatório", nil)
			return
		}

		actions, err := service.ListActions(r.Context(), accountID)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("actions: failed to list actions")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, actions)
	})
}

// ProposeActionRequest solicita uma proposta manual de ação para um alvo
type ProposeActionRequest struct {
	TargetKind string `json:"target_kind" validate:"required"`
	TargetID   string `json:"target_id" validate:"required"`
}

// ProposeAction dispara manualmente a proposta de ajuste pela estratégia
// ativa da conta, sem esperar por uma seleção no barramento
func ProposeAction(service automation.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var request ProposeActionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		target := domain.ActionTarget{
			Kind: domain.TargetKind(request.TargetKind),
			ID:   request.TargetID,
		}

		action, err := service.Propose(r.Context(), accountID, target, &automation.Proposal{
			Source: domain.TriggerStrategyChange,
		})
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"account_id": accountID,
				"target":     target.Key(),
				"error":      err.Error(),
			}).Warn("actions: failed to propose action")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusAccepted, action)
	})
}

// ExecutorCallbackRequest é o retorno assíncrono do executor de campanhas
type ExecutorCallbackRequest struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ExecutorCallback(service automation.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actionID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var request ExecutorCallbackRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		if err := service.HandleExecutorCallback(r.Context(), actionID, request.Success, request.Message); err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"action_id": actionID,
				"error":     err.Error(),
			}).Warn("actions: failed to handle executor callback")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	})
}
