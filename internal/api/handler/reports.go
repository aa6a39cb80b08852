package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/repository"
	"github.com/MarcioBJunior/mlabs-collector/pkg/apiErrors"
	"github.com/MarcioBJunior/mlabs-collector/pkg/log"
)

var errLimit = errors.New("parâmetro limit deve ser um inteiro positivo")

const (
	defaultReportsLimit = 30
	maxReportsLimit     = 365
)

// GetReports consulta os registros gravados de um relatório. Com start, retorna
// apenas o registro daquele período.
func GetReports(repo repository.ReportResultRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		reportName := query.Get("report")
		if reportName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro report é obrigatório", nil)
			return
		}

		if start := query.Get("start"); start != "" {
			if _, err := time.Parse(time.DateOnly, start); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro start deve estar no formato YYYY-MM-DD", nil)
				return
			}

			stored, err := repo.GetByReportAndStart(r.Context(), reportName, start)
			if err != nil {
				logger.WithError(err).WithField("report", reportName).Error("reports: erro ao buscar registro")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar registro", nil)
				return
			}
			if stored == nil {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Registro não encontrado", map[string]string{
					"report": reportName,
					"start":  start,
				})
				return
			}

			writeJSON(w, http.StatusOK, stored)
			return
		}

		limit, err := parseLimit(query.Get("limit"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		reports, err := repo.ListByReport(r.Context(), reportName, limit)
		if err != nil {
			logger.WithError(err).WithField("report", reportName).Error("reports: erro ao listar registros")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar registros", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"report": reportName,
			"count":  len(reports),
			"items":  reports,
		})
	})
}

func parseLimit(raw string) (uint64, error) {
	if raw == "" {
		return defaultReportsLimit, nil
	}

	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || limit == 0 {
		return 0, errLimit
	}
	return min(limit, maxReportsLimit), nil
}
