package handler

import (
	"net/http"

	"github.com/vfg2006/chai-ledger/internal/api/handler/router"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
	"github.com/vfg2006/chai-ledger/internal/usecases/authenticating"
	"github.com/vfg2006/chai-ledger/internal/usecases/invoicing"
	"github.com/vfg2006/chai-ledger/internal/usecases/recording"
	"github.com/vfg2006/chai-ledger/pkg/middleware"
)

var authenticated = []func(http.Handler) http.Handler{middleware.RequireUser()}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:username/password",
			Method:      http.MethodPost,
			Handler:     SetPassword(service),
			Middlewares: authenticated,
		},
	}
}

func Dashboard(service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: authenticated,
		},
	}
}

func Offices(service recording.Recorder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/offices",
			Method:      http.MethodPost,
			Handler:     CreateOffice(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/offices",
			Method:      http.MethodGet,
			Handler:     ListOffices(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/offices/:name",
			Method:      http.MethodDelete,
			Handler:     DeleteOffice(service),
			Middlewares: authenticated,
		},
	}
}

func Orders(recorder recording.Recorder, aggregator aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/orders",
			Method:      http.MethodPost,
			Handler:     CreateOrder(recorder),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/orders",
			Method:      http.MethodGet,
			Handler:     ListOrders(aggregator),
			Middlewares: authenticated,
		},
	}
}

func Reports(aggregator aggregating.Aggregator, invoicer invoicing.Invoicer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/report",
			Method:      http.MethodGet,
			Handler:     GetReport(aggregator),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/invoice",
			Method:      http.MethodGet,
			Handler:     DownloadInvoice(invoicer),
			Middlewares: authenticated,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: authenticated,
		},
	}
}
