package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/alerting"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/notifying"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
)

func ListAlertEvents(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := r.URL.Query().Get("account_id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id é obrigatório", nil)
			return
		}

		onlyUnresolved := r.URL.Query().Get("unresolved") == "true"

		events, err := service.ListEvents(r.Context(), accountID, onlyUnresolved)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("alert-events: failed to list events")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, events)
	})
}

func AcknowledgeAlertEvent(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		event, err := service.Acknowledge(r.Context(), id)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"event_id": id,
				"error":    err.Error(),
			}).Warn("alert-events: failed to acknowledge event")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, event)
	})
}

func ResolveAlertEvent(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		event, err := service.Resolve(r.Context(), id)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"event_id": id,
				"error":    err.Error(),
			}).Warn("alert-events: failed to resolve event")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, event)
	})
}

// GetNotificationResults expõe o resultado de entrega por canal de um evento
func GetNotificationResults(service notifying.NotifyService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eventID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		results, err := service.Results(eventID)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"event_id": eventID,
				"error":    err.Error(),
			}).Error("alert-events: failed to list notification results")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, results)
	})
}
