package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/chai-ledger/infrastructure/repository"
	"github.com/vfg2006/chai-ledger/internal/api/handler/router"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
	"github.com/vfg2006/chai-ledger/internal/usecases/authenticating"
	"github.com/vfg2006/chai-ledger/internal/usecases/invoicing"
	"github.com/vfg2006/chai-ledger/internal/usecases/recording"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
	"github.com/vfg2006/chai-ledger/pkg/log"
	"github.com/vfg2006/chai-ledger/pkg/middleware"
)

func init() {
	log.SetupTestLogger()
}

type testAPI struct {
	router   router.Router
	recorder *recording.Service
	cron     *stubCronJob
}

type stubCronJob struct {
	triggered int
	err       error
}

func (s *stubCronJob) TriggerManualSync() error {
	if s.err != nil {
		return s.err
	}
	s.triggered++
	return nil
}

func (s *stubCronJob) GetStatus() map[string]any {
	return map[string]any{"export_running": false, "triggered": s.triggered}
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	repo := repository.NewFileLedgerRepository(filepath.Join(t.TempDir(), "data.json"))
	recorder := recording.NewService(repo, nil)
	require.NoError(t, recorder.Load(context.Background()))

	aggregator := aggregating.NewService(recorder)
	invoicer := invoicing.NewService(recorder, domain.DefaultBusinessProfile(), nil)

	cfg := &config.Config{SecretKey: "segredo"}
	cfg.Auth.TokenTTL = time.Hour
	authenticator := authenticating.NewService(
		authenticating.NewStaticSource([]domain.Credential{{Username: "admin", Password: "chai123"}}),
		nil,
		cfg,
	)

	cron := &stubCronJob{}
	rt := router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Authentication(authenticator)...),
		router.WithRoutes(Dashboard(aggregator)...),
		router.WithRoutes(Offices(recorder)...),
		router.WithRoutes(Orders(recorder, aggregator)...),
		router.WithRoutes(Reports(aggregator, invoicer)...),
		router.WithRoutes(CronJobs(CronJobServices{InvoiceExport: cron})...),
	)

	return &testAPI{router: rt, recorder: recorder, cron: cron}
}

// do executa a requisição já autenticada como admin
func (a *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, &domain.Claims{Username: "admin"}))

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthcheck(t *testing.T) {
	api := newTestAPI(t)

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Credenciais corretas",
			body:       `{"username":"admin","password":"chai123"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Senha errada",
			body:       `{"username":"admin","password":"errada"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidCredentials,
		},
		{
			name:       "Usuário desconhecido",
			body:       `{"username":"ninguem","password":"x"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrUserNotFound,
		},
		{
			name:       "Corpo inválido",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			rec := httptest.NewRecorder()
			api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode[apiErrors.APIError](t, rec).Code)
				return
			}
			assert.NotEmpty(t, decode[map[string]string](t, rec)["token"])
		})
	}
}

func TestSetPassword_ReadOnlyCredentials(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/users/outro/password", `{"password":"novasenha"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/v1/users/admin/password", `{"password":"novasenha"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decode[apiErrors.APIError](t, rec).Code)
}

func TestRoutesRequireUser(t *testing.T) {
	api := newTestAPI(t)

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOffices(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/offices", `{"name":" Acme ","mobile":"999","address":"Rua 1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.Office{Name: "Acme", Mobile: "999", Address: "Rua 1"}, decode[domain.Office](t, rec))

	api.do(http.MethodPost, "/v1/offices", `{"name":"Acme","mobile":"888"}`)
	api.do(http.MethodPost, "/v1/offices", `{"name":"Beta","mobile":"777"}`)

	rec = api.do(http.MethodPost, "/v1/offices", `{"name":"Sem telefone"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[apiErrors.APIError](t, rec)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, body.Code)

	rec = api.do(http.MethodGet, "/v1/offices", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Office](t, rec), 3)

	rec = api.do(http.MethodDelete, "/v1/offices/Acme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, RemoveOfficeResponse{Name: "Acme", Removed: 2}, decode[RemoveOfficeResponse](t, rec))

	rec = api.do(http.MethodDelete, "/v1/offices/Inexistente", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[RemoveOfficeResponse](t, rec).Removed)

	assert.Equal(t, []domain.Office{{Name: "Beta", Mobile: "777"}}, api.recorder.Offices())
}

func TestOrders(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/orders",
		`{"office_name":"Acme","tea_count":"2.9","coffee_count":null,"tea_price":10,"coffee_price":"15","date":"2024-01-05"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total_amount":20`)

	order := decode[domain.Order](t, rec)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 2, order.TeaCount)
	assert.Equal(t, 0, order.CoffeeCount)
	assert.Equal(t, "20.00", order.TotalAmount.StringFixed(2))

	api.do(http.MethodPost, "/v1/orders", `{"office_name":"Beta","coffee_count":3,"coffee_price":15,"date":"2024-02-10"}`)

	rec = api.do(http.MethodPost, "/v1/orders", `{"office_name":"","tea_count":1,"tea_price":10,"date":"2023-12-01"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodPost, "/v1/orders", `{"office_name":"Acme","tea_count":-1,"tea_price":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/v1/orders", `{"office_name":"Acme","tea_count":"muitos"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/v1/orders?office=Acme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Order](t, rec), 1)

	rec = api.do(http.MethodGet, "/v1/orders?from=2024-02-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Order](t, rec), 1)

	rec = api.do(http.MethodGet, "/v1/orders?from=2024-03-01&to=2024-02-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Order](t, rec))

	rec = api.do(http.MethodGet, "/v1/orders?from=05/01/2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedLedger(t *testing.T, api *testAPI) {
	t.Helper()

	api.do(http.MethodPost, "/v1/offices", `{"name":"Acme","mobile":"999","address":"Rua 1"}`)
	api.do(http.MethodPost, "/v1/orders", `{"office_name":"Acme","tea_count":2,"tea_price":10,"date":"2024-01-05"}`)
	api.do(http.MethodPost, "/v1/orders", `{"office_name":"Acme","coffee_count":1,"coffee_price":15,"date":"2024-01-20"}`)
	api.do(http.MethodPost, "/v1/orders", `{"office_name":"Beta","tea_count":3,"tea_price":15,"date":"2024-02-02"}`)
	require.Len(t, api.recorder.Orders(), 3)
}

func TestDashboard(t *testing.T) {
	api := newTestAPI(t)
	seedLedger(t, api)

	rec := api.do(http.MethodGet, "/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	dashboard := decode[domain.Dashboard](t, rec)
	assert.Equal(t, 1, dashboard.Totals.Offices)
	assert.Equal(t, 5, dashboard.Totals.Tea)
	assert.Equal(t, 1, dashboard.Totals.Coffee)
	assert.Equal(t, "80.00", dashboard.Totals.Revenue.StringFixed(2))
	assert.Len(t, dashboard.Monthly, 2)
	assert.Len(t, dashboard.ByOffice, 2)
}

func TestReport(t *testing.T) {
	api := newTestAPI(t)
	seedLedger(t, api)

	rec := api.do(http.MethodGet, "/v1/report?office=Acme", "")
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[domain.Report](t, rec)
	assert.Equal(t, "Acme", report.Filter.Office)
	assert.Equal(t, "2024-01-05", report.Filter.From.String())
	assert.Equal(t, "2024-02-02", report.Filter.To.String())
	assert.Len(t, report.Orders, 2)
	assert.Equal(t, "35.00", report.GrandTotal.StringFixed(2))

	rec = api.do(http.MethodGet, "/v1/report?from=ontem", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadInvoice(t *testing.T) {
	api := newTestAPI(t)
	seedLedger(t, api)

	rec := api.do(http.MethodGet, "/v1/report/invoice?office=Acme&format=txt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Invoice-001.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "001", rec.Header().Get("X-Invoice-Number"))
	assert.Contains(t, rec.Body.String(), "Rs.35.00")
	assert.Contains(t, rec.Body.String(), "Acme")

	rec = api.do(http.MethodGet, "/v1/report/invoice?office=Fantasma&format=md", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Invoice-002.md"`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Header().Get("X-Invoice-Warning"))

	rec = api.do(http.MethodGet, "/v1/report/invoice?office=Acme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = api.do(http.MethodGet, "/v1/report/invoice?office=Acme&format=docx", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrUnsupportedFormat, decode[apiErrors.APIError](t, rec).Code)

	assert.Equal(t, 3, api.recorder.Snapshot().InvoiceSequence)
}

func TestCronJobs(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/cron/invoice-export/run", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, api.cron.triggered)

	rec = api.do(http.MethodPost, "/v1/cron/desconhecido/run", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/v1/cron/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), CronJobTypeInvoiceExport)
}
