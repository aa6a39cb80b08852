package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/MarcioBJunior/mlabs-collector/internal/runner"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/collecting"
	"github.com/MarcioBJunior/mlabs-collector/pkg/apiErrors"
	"github.com/MarcioBJunior/mlabs-collector/pkg/log"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CollectResponse é a resposta de uma coleta síncrona bem-sucedida
type CollectResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *CollectData `json:"data"`
}

type CollectData struct {
	domain.CollectSummary
	Timestamp string `json:"timestamp"`
}

// RunCollect executa a coleta dentro da requisição e devolve o resumo
func RunCollect(service runner.Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("collect: iniciando coleta do mLabs")

		summary, err := service.RunSync(r.Context())
		if err != nil {
			code, message := collectErrorCode(err)

			details := map[string]any{"error": err.Error()}
			if summary != nil {
				details["executionTime"] = summary.ExecutionTime
				details["runId"] = summary.RunID
			}

			logger.WithError(err).WithField("code", code).Error("collect: coleta falhou")
			apiErrors.WriteError(w, code, message, details)
			return
		}

		logger.WithFields(log.Fields{
			"run_id":    summary.RunID,
			"collected": summary.ReportsCollected,
			"failed":    summary.ReportsFailed,
		}).Info("collect: coleta concluída")

		writeJSON(w, http.StatusOK, CollectResponse{
			Success: true,
			Message: "Coleta concluída com sucesso",
			Data: &CollectData{
				CollectSummary: *summary,
				Timestamp:      summary.FinishedAt.Format(time.RFC3339),
			},
		})
	})
}

// TriggerCollect dispara a coleta em background
func TriggerCollect(service runner.Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !service.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrCollectRunning, "Já existe uma coleta em andamento", nil)
			return
		}

		log.ForContext(r.Context()).Info("collect: coleta disparada em background")
		writeJSON(w, http.StatusAccepted, map[string]any{
			"success": true,
			"message": "Coleta iniciada",
		})
	})
}

// CollectStatus retorna o estado da última execução
func CollectStatus(service runner.Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.GetStatus())
	})
}

func collectErrorCode(err error) (string, string) {
	switch {
	case errors.Is(err, runner.ErrSyncRunning):
		return apiErrors.ErrCollectRunning, "Já existe uma coleta em andamento"
	case collecting.IsFatal(err):
		if errors.Is(err, collecting.ErrAuthentication) {
			return apiErrors.ErrCollectAuthentication, "Falha na autenticação no mLabs"
		}
		return apiErrors.ErrCollectNavigation, "Não foi possível acessar a listagem de relatórios"
	case errors.Is(err, runner.ErrBrowser):
		return apiErrors.ErrCollectBrowser, "Não foi possível iniciar o navegador"
	case errors.Is(err, context.DeadlineExceeded):
		return apiErrors.ErrCollectTimeout, "Tempo de execução da coleta esgotado"
	default:
		return apiErrors.ErrInternalServer, "Erro ao executar a coleta"
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Warn("erro ao escrever a resposta")
	}
}
