package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/render"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
	"github.com/vfg2006/chai-ledger/internal/usecases/invoicing"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
	"github.com/vfg2006/chai-ledger/pkg/log"
)

func GetReport(service aggregating.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetReport")

		filter, err := reportFilter(r)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, service.Report(r.Context(), filter))
	}
}

// DownloadInvoice emite a fatura do filtro e devolve o arquivo como anexo.
// O documento é desenhado inteiro antes de qualquer byte ir para a resposta.
func DownloadInvoice(service invoicing.Invoicer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DownloadInvoice")

		filter, err := reportFilter(r)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		format, err := render.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnsupportedFormat, err.Error(), map[string]any{
				"accepted": []render.Format{render.FormatPDF, render.FormatText, render.FormatMarkdown, render.FormatHTML, render.FormatChrome},
			})
			return
		}

		var buf bytes.Buffer
		invoice, renderer, err := service.Export(r.Context(), filter, format, &buf)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("office", filter.Office).Error("handler: erro ao emitir fatura")
			if errors.Is(err, render.ErrUnsupportedFormat) {
				apiErrors.WriteError(w, apiErrors.ErrUnsupportedFormat, err.Error(), nil)
				return
			}
			apiErrors.WriteFromError(w, err)
			return
		}

		for _, warning := range invoice.Warnings {
			w.Header().Add("X-Invoice-Warning", warning)
		}
		w.Header().Set("X-Invoice-Number", invoice.Number)
		w.Header().Set("Content-Type", renderer.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.FileName(invoice, renderer)))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)

		if _, err := buf.WriteTo(w); err != nil {
			logrus.WithError(err).Error("handler: erro ao enviar fatura")
		}
	}
}
