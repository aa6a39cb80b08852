package main

import (
	"context"

	"github.com/MarcioBJunior/mlabs-collector/internal/api"
	"github.com/MarcioBJunior/mlabs-collector/internal/app"
	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/telemetry"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/authenticating"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	app.ConfigureLogger(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reportRepo, closeRepo, err := app.NewReportRepository(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer closeRepo()

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)
	collectService := app.NewCollectService(cfg, reportRepo, metrics)
	authenticator := authenticating.NewService(cfg)

	server, err := api.New(
		cfg,
		collectService,
		reportRepo,
		authenticator,
		prometheus.DefaultGatherer,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
