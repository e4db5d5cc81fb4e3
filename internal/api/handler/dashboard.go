package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
)

func GetDashboard(service aggregating.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetDashboard")

		writeJSON(w, http.StatusOK, service.Dashboard(r.Context()))
	}
}
