package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/scheduler"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
)

const (
	CronJobTypeInvoiceExport = "invoice-export"
)

// CronJob é um job agendado que também pode ser disparado pela API
type CronJob interface {
	TriggerManualSync() error
	GetStatus() map[string]any
}

type CronJobServices struct {
	InvoiceExport CronJob
}

func (s CronJobServices) byType(cronType string) (CronJob, bool) {
	switch cronType {
	case CronJobTypeInvoiceExport:
		return s.InvoiceExport, s.InvoiceExport != nil
	default:
		return nil, false
	}
}

// RunCronJob executa manualmente um job agendado
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		job, ok := services.byType(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrUnknownJob, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeInvoiceExport, nil)
			return
		}

		if err := job.TriggerManualSync(); err != nil {
			if errors.Is(err, scheduler.ErrAlreadyRunning) {
				apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, err.Error(), nil)
				return
			}
			logrus.WithError(err).Error("handler: erro ao iniciar cron job")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar cron job", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status dos jobs configurados
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.InvoiceExport != nil {
			status[CronJobTypeInvoiceExport] = services.InvoiceExport.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}

var _ CronJob = (*scheduler.InvoiceExportService)(nil)
