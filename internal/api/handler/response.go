package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
	"github.com/vfg2006/chai-ledger/pkg/utils"
)

var json = utils.JSON

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("handler: erro ao enviar resposta")
	}
}

// flexValue aceita número, texto ou null nos campos numéricos do formulário
type flexValue string

func (v *flexValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*v = ""
		return nil
	}

	if unquoted, err := strconv.Unquote(raw); err == nil {
		*v = flexValue(unquoted)
		return nil
	}

	*v = flexValue(raw)
	return nil
}

// reportFilter lê office, from e to da query string
func reportFilter(r *http.Request) (domain.ReportFilter, error) {
	query := r.URL.Query()

	from, to, err := utils.ParseDateRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return domain.ReportFilter{}, err
	}

	return domain.ReportFilter{
		Office: strings.TrimSpace(query.Get("office")),
		From:   from,
		To:     to,
	}, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logrus.WithError(err).Warn("handler: corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}
