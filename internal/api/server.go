package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/repository"
	"github.com/MarcioBJunior/mlabs-collector/internal/api/handler"
	"github.com/MarcioBJunior/mlabs-collector/internal/api/handler/router"
	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/runner"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/authenticating"
	"github.com/MarcioBJunior/mlabs-collector/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	collectService runner.Runner,
	reportRepo repository.ReportResultRepository,
	authenticator authenticating.Authenticator,
	gatherer prometheus.Gatherer,
) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, collectService, reportRepo, authenticator, gatherer),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta as rotas com a cadeia de middlewares da API
func NewHandler(
	config *config.Config,
	collectService runner.Runner,
	reportRepo repository.ReportResultRepository,
	authenticator authenticating.Authenticator,
	gatherer prometheus.Gatherer,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(reportRepo)...),
		router.WithRoutes(handler.Metrics(gatherer)...),
		router.WithRoutes(handler.Collect(collectService)...),
		router.WithRoutes(handler.Reports(reportRepo)...),
	)

	if !authenticator.Enabled() {
		logrus.Warn("SECRET_KEY não configurada, endpoints da coleta sem autenticação")
	}

	return alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown aguarda as requisições em andamento, inclusive uma coleta síncrona, até o timeout
func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
