package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
	"github.com/vfg2006/chai-ledger/internal/usecases/recording"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
	"github.com/vfg2006/chai-ledger/pkg/utils"
)

// OrderRequest espelha a tela de lançamento; números podem chegar como texto
type OrderRequest struct {
	OfficeName  string    `json:"office_name"`
	TeaCount    flexValue `json:"tea_count"`
	CoffeeCount flexValue `json:"coffee_count"`
	TeaPrice    flexValue `json:"tea_price"`
	CoffeePrice flexValue `json:"coffee_price"`
	Date        string    `json:"date"`
}

func (req OrderRequest) toInput() (domain.OrderInput, error) {
	input := domain.OrderInput{OfficeName: req.OfficeName}
	var err error

	if input.TeaCount, err = utils.ParseQuantity("tea_count", string(req.TeaCount)); err != nil {
		return input, err
	}
	if input.CoffeeCount, err = utils.ParseQuantity("coffee_count", string(req.CoffeeCount)); err != nil {
		return input, err
	}
	if input.TeaPrice, err = utils.ParseAmount("tea_price", string(req.TeaPrice)); err != nil {
		return input, err
	}
	if input.CoffeePrice, err = utils.ParseAmount("coffee_price", string(req.CoffeePrice)); err != nil {
		return input, err
	}
	if input.Date, err = utils.ParseDate("date", req.Date); err != nil {
		return input, err
	}

	return input, nil
}

func CreateOrder(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateOrder")

		var req OrderRequest
		if !decodeBody(w, r, &req) {
			return
		}

		input, err := req.toInput()
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		order, err := service.AddOrder(r.Context(), input)
		if err != nil {
			logrus.WithError(err).Warn("handler: pedido não registrado")
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

// ListOrders devolve os pedidos filtrados por office, from e to
func ListOrders(service aggregating.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListOrders")

		filter, err := reportFilter(r)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, service.FilterOrders(r.Context(), filter))
	}
}
