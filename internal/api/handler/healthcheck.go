package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/repository"
	"github.com/MarcioBJunior/mlabs-collector/pkg/apiErrors"
	"github.com/MarcioBJunior/mlabs-collector/pkg/log"
)

const healthcheckTimeout = 3 * time.Second

// HealthcheckHandler verifica a conexão com o armazenamento dos relatórios
func HealthcheckHandler(repo repository.ReportResultRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
		defer cancel()

		if err := repo.Ping(ctx); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("healthcheck: banco de dados indisponível")
			apiErrors.WriteError(w, apiErrors.ErrCommunication, "Banco de dados indisponível", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"database":  "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}
