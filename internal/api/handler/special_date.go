package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/strategy"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
)

func CreateSpecialDate(service strategy.StrategyService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input strategy.SpecialDateInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		overlay, err := service.CreateSpecialDate(r.Context(), &input)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"name":  input.Name,
				"error": err.Error(),
			}).Warn("special-dates: failed to create overlay")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, overlay)
	})
}

func ListSpecialDates(service strategy.StrategyService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		overlays, err := service.ListSpecialDates(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("special-dates: failed to list overlays")
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, overlays)
	})
}

func DeleteSpecialDate(service strategy.StrategyService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteSpecialDate(r.Context(), id); err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	})
}
