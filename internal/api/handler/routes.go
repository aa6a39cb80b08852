package handler

import (
	"net/http"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/repository"
	"github.com/MarcioBJunior/mlabs-collector/internal/api/handler/router"
	"github.com/MarcioBJunior/mlabs-collector/internal/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Healthcheck(repo repository.ReportResultRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(repo),
		},
	}
}

func Metrics(gatherer prometheus.Gatherer) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		},
	}
}

func Collect(service runner.Runner) []router.Route {
	return []router.Route{
		{
			Path:    "/api/collect",
			Method:  http.MethodGet,
			Handler: RunCollect(service),
		},
		{
			Path:    "/api/collect",
			Method:  http.MethodPost,
			Handler: RunCollect(service),
		},
		{
			Path:    "/api/collect/trigger",
			Method:  http.MethodPost,
			Handler: TriggerCollect(service),
		},
		{
			Path:    "/api/collect/status",
			Method:  http.MethodGet,
			Handler: CollectStatus(service),
		},
	}
}

func Reports(repo repository.ReportResultRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: GetReports(repo),
		},
	}
}
