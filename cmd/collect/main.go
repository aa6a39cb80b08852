package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/app"
	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/telemetry"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/authenticating"
	"github.com/MarcioBJunior/mlabs-collector/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	tokenSubject := flag.String("token", "", "gera um token de acesso para o subject informado e encerra")
	tokenTTL := flag.Duration("token-ttl", 0, "validade do token gerado; zero gera um token sem expiração")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	app.ConfigureLogger(cfg.App.LogLevel)

	if *tokenSubject != "" {
		token, err := authenticating.NewService(cfg).GenerateToken(*tokenSubject, *tokenTTL)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao gerar token")
		}
		fmt.Println(token)
		return
	}

	if err := collect(cfg); err != nil {
		logrus.WithError(err).Error("Coleta do mLabs falhou")
		os.Exit(1)
	}
}

// collect executa uma coleta e imprime o resumo em JSON, inclusive quando ela falha
func collect(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Collect.RunBudget+time.Minute)
	defer cancel()

	reportRepo, closeRepo, err := app.NewReportRepository(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}
	defer closeRepo()

	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	summary, runErr := app.NewCollectService(cfg, reportRepo, metrics).RunSync(ctx)

	if summary != nil {
		out, err := utils.PrettyJson(summary)
		if err != nil {
			logrus.WithError(err).Error("Erro ao serializar o resumo da coleta")
		} else {
			fmt.Println(out)
		}
	}

	return runErr
}
