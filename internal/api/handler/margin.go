package handler

import (
	"net/http"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/margin"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
)

// ValidateMargin calcula a segurança de margem de um produto. Função pura:
// a mesma entrada devolve sempre o mesmo resultado.
func ValidateMargin(service margin.Validator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input domain.MarginValidationInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		result, err := service.Validate(input)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"product_price": input.ProductPrice,
				"product_cost":  input.ProductCost,
				"error":         err.Error(),
			}).Warn("margin: validation rejected")

			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	})
}
