package app

import (
	"context"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/browser"
	"github.com/MarcioBJunior/mlabs-collector/infrastructure/database/postgres"
	"github.com/MarcioBJunior/mlabs-collector/infrastructure/migration"
	"github.com/MarcioBJunior/mlabs-collector/infrastructure/repository"
	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/runner"
	"github.com/MarcioBJunior/mlabs-collector/internal/telemetry"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/collecting"
	"github.com/sirupsen/logrus"
)

// ConfigureLogger define o formato dos logs e o nível vindo de LOG_LEVEL
func ConfigureLogger(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)
}

// NewReportRepository conecta ao PostgreSQL e garante a tabela quando DATABASE_URL
// está configurada. Sem ela os registros ficam em memória.
func NewReportRepository(ctx context.Context, dbConfig config.Database) (repository.ReportResultRepository, func(), error) {
	if dbConfig.DSN == "" {
		logrus.Warn("DATABASE_URL não configurada, registros mantidos apenas em memória")
		return repository.NewMemoryReportRepository(), func() {}, nil
	}

	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		return nil, nil, err
	}

	if err := migration.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	closeConn := func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
		}
	}
	return repository.NewReportResultRepository(conn), closeConn, nil
}

// NewCollectService monta o serviço de coleta com navegador, cookies e persistência
func NewCollectService(
	cfg *config.Config,
	reportRepo repository.ReportResultRepository,
	metrics *telemetry.Metrics,
) *runner.CollectSyncService {
	cookieStore := config.NewSecretCookieStore(cfg, config.NewRenderClient(cfg))

	return runner.NewCollectSyncService(
		collecting.NewService(cfg),
		browser.NewLauncher(cfg.Browser),
		cookieStore,
		reportRepo,
		cfg,
		runner.WithMetrics(metrics),
	)
}
