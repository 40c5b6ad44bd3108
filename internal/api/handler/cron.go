package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/scheduler"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeAlertRetention = "alert-retention"
	CronJobTypeActionSweep    = "action-sweep"
)

// CronJobServices contém os serviços agendados expostos para execução manual
type CronJobServices struct {
	AlertRetentionService *scheduler.AlertRetentionService
	ActionSweepService    *scheduler.ActionSweepService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeAlertRetention:
			if services.AlertRetentionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de retenção de alertas não disponível", nil)
				return
			}
			services.AlertRetentionService.TriggerManualPurge()

		case CronJobTypeActionSweep:
			if services.ActionSweepService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de varredura de ações não disponível", nil)
				return
			}
			services.ActionSweepService.TriggerManualSweep()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job desconhecido: "+cronType, nil)
			return
		}

		logrus.WithField("cron_type", cronType).Info("Cron job disparada manualmente")
		respondJSON(w, http.StatusAccepted, map[string]string{"status": "started", "type": cronType})
	}
}

// GetCronStatus retorna o status dos agendadores
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.AlertRetentionService != nil {
			status["alert_retention"] = services.AlertRetentionService.GetStatus()
		}
		if services.ActionSweepService != nil {
			status["action_sweep"] = services.ActionSweepService.GetStatus()
		}

		respondJSON(w, http.StatusOK, status)
	}
}
