package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/internal/usecases/recording"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
)

type RemoveOfficeResponse struct {
	Name    string `json:"name"`
	Removed int    `json:"removed"`
}

func CreateOffice(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateOffice")

		var req domain.Office
		if !decodeBody(w, r, &req) {
			return
		}

		office, err := service.AddOffice(r.Context(), req)
		if err != nil {
			logrus.WithError(err).Warn("handler: escritório não cadastrado")
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, office)
	}
}

func ListOffices(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListOffices")

		writeJSON(w, http.StatusOK, service.Offices())
	}
}

// DeleteOffice remove todos os escritórios com o nome informado.
// Nenhum escritório com esse nome não é erro: removed volta zero.
func DeleteOffice(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteOffice")

		name := httprouter.ParamsFromContext(r.Context()).ByName("name")

		removed, err := service.RemoveOffice(r.Context(), name)
		if err != nil {
			logrus.WithError(err).Warn("handler: erro ao remover escritório")
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RemoveOfficeResponse{Name: name, Removed: removed})
	}
}
