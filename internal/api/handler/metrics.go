package handler

import (
	"net/http"
	"time"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/usecases/alerting"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/utils"
)

// MetricSampleInput é uma amostra de métrica enviada por um produtor.
// O timestamp é RFC3339; vazio usa o instante do recebimento.
type MetricSampleInput struct {
	AccountID  string  `json:"account_id" validate:"required"`
	Metric     string  `json:"metric" validate:"required"`
	Value      float64 `json:"value"`
	CampaignID string  `json:"campaign_id"`
	Timestamp  string  `json:"timestamp"`
}

// CheckMetricsRequest é o lote de amostras avaliadas em uma chamada
type CheckMetricsRequest struct {
	Samples []MetricSampleInput `json:"samples" validate:"required,min=1,dive"`
}

// CheckMetricsResponse devolve os eventos disparados pelo lote
type CheckMetricsResponse struct {
	Evaluated int                  `json:"evaluated"`
	Triggered []*domain.AlertEvent `json:"triggered"`
}

// CheckMetrics avalia um lote de amostras contra as regras habilitadas.
// Amostra com métrica desconhecida é ignorada, não derruba o lote.
func CheckMetrics(service alerting.AlertService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request CheckMetricsRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		now := time.Now()
		triggered := make([]*domain.AlertEvent, 0)

		for _, input := range request.Samples {
			timestamp, err := utils.ParseTimestamp(input.Timestamp, now)
			if err != nil {
				logger.WithFields(log.Fields{
					"account_id": input.AccountID,
					"timestamp":  input.Timestamp,
				}).Warn("metrics: invalid sample timestamp, skipping")
				continue
			}

			sample := &domain.MetricSample{
				AccountID:  input.AccountID,
				Metric:     domain.MetricName(input.Metric),
				Value:      input.Value,
				CampaignID: input.CampaignID,
				Timestamp:  timestamp,
			}

			events, err := service.Evaluate(r.Context(), sample)
			if err != nil {
				logger.WithFields(log.Fields{
					"account_id": input.AccountID,
					"metric":     input.Metric,
					"error":      err.Error(),
				}).Error("metrics: failed to evaluate sample")

				writeUsecaseError(w, err)
				return
			}

			triggered = append(triggered, events...)
		}

		logger.WithFields(log.Fields{
			"evaluated": len(request.Samples),
			"triggered": len(triggered),
		}).Info("metrics: batch evaluated")

		respondJSON(w, http.StatusOK, CheckMetricsResponse{
			Evaluated: len(request.Samples),
			Triggered: triggered,
		})
	})
}
