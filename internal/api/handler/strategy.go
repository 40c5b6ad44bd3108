package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/strategy"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/utils"
)

func ListStrategies(service strategy.StrategyService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		strategies, err := service.ListStrategies(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("strategies: failed to list catalog")
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, strategies)
	})
}

func GetStrategy(service strategy.StrategyService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := service.GetStrategy(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	})
}

// ApplyStrategyRequest seleciona a estratégia ativa de uma conta
type ApplyStrategyRequest struct {
	StrategyID string `json:"strategy_id" validate:"required"`
}

func ApplyStrategy(service strategy.StrategyService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var request ApplyStrategyRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		active, err := service.Apply(r.Context(), request.StrategyID, accountID)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"account_id":  accountID,
				"strategy_id": request.StrategyID,
				"error":       err.Error(),
			}).Warn("strategies: failed to apply strategy")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, active)
	})
}

// GetEffectiveParams devolve os parâmetros da estratégia ativa combinados
// com os overlays vigentes. O instante pode ser fixado via query `at`
// (RFC3339) para consultas retroativas; o default é agora.
func GetEffectiveParams(service strategy.StrategyService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		at, err := utils.ParseTimestamp(r.URL.Query().Get("at"), time.Now())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "parâmetro at inválido, use RFC3339", nil)
			return
		}

		params, err := service.EffectiveParams(r.Context(), accountID, at)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Warn("strategies: failed to compute effective params")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, params)
	})
}
