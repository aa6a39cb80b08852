package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/repository"
	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/MarcioBJunior/mlabs-collector/internal/telemetry"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/collecting"
	"github.com/MarcioBJunior/mlabs-collector/pkg/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrSyncRunning = errors.New("coleta do mLabs já em andamento")
	ErrBrowser     = errors.New("erro ao iniciar o navegador")
)

// CollectSyncService executa a coleta do mLabs: abre o navegador, restaura os
// cookies da sessão, coleta os relatórios salvando cada um e guarda os cookies
// de volta. Só uma execução roda por vez.
type CollectSyncService struct {
	collector  collecting.Collector
	sessions   collecting.SessionFactory
	cookies    config.CookieStore
	reportRepo repository.ReportResultRepository
	metrics    *telemetry.Metrics
	runBudget  time.Duration
	now        func() time.Time
	newRunID   func() (string, error)

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *domain.CollectSummary
	lastError           string
}

type Option func(*CollectSyncService)

func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(s *CollectSyncService) {
		s.metrics = metrics
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *CollectSyncService) {
		s.now = now
	}
}

func WithRunID(newRunID func() (string, error)) Option {
	return func(s *CollectSyncService) {
		s.newRunID = newRunID
	}
}

func NewCollectSyncService(
	collector collecting.Collector,
	sessions collecting.SessionFactory,
	cookies config.CookieStore,
	reportRepo repository.ReportResultRepository,
	appConfig *config.Config,
	opts ...Option,
) *CollectSyncService {
	s := &CollectSyncService{
		collector:  collector,
		sessions:   sessions,
		cookies:    cookies,
		reportRepo: reportRepo,
		runBudget:  appConfig.Collect.RunBudget,
		now:        time.Now,
		newRunID:   utils.GenerateID,
	}

	for _, opt := range opts {
		opt(s)
	}

	logrus.WithField("run_budget", s.runBudget.String()).Info("Configuração da coleta do mLabs carregada")

	return s
}

// RunSync executa uma coleta e aguarda o fim. O resumo é retornado mesmo
// quando a coleta falha, com o tempo de execução preenchido.
func (s *CollectSyncService) RunSync(ctx context.Context) (*domain.CollectSummary, error) {
	if !s.tryStart() {
		logrus.Info("Coleta do mLabs já em andamento, ignorando")
		return nil, ErrSyncRunning
	}
	defer s.finish()

	return s.run(ctx)
}

// TriggerManualSync inicia uma coleta em segundo plano. Retorna false quando
// já existe uma em andamento.
func (s *CollectSyncService) TriggerManualSync() bool {
	if !s.tryStart() {
		logrus.Info("Coleta do mLabs já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando coleta manual do mLabs")
	go func() {
		defer s.finish()
		if _, err := s.run(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na coleta manual do mLabs")
		}
	}()

	return true
}

// GetStatus retorna o estado da última execução
func (s *CollectSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_running":           s.syncRunning,
		"run_budget":             s.runBudget.String(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
	}

	if s.lastSummary != nil {
		status["last_run_id"] = s.lastSummary.RunID
		status["last_execution_time"] = s.lastSummary.ExecutionTime
		status["last_reports_found"] = s.lastSummary.ReportsFound
		status["last_reports_collected"] = s.lastSummary.ReportsCollected
		status["last_reports_failed"] = s.lastSummary.ReportsFailed
		status["last_reports_saved"] = s.lastSummary.ReportsSaved
	}

	return status
}

func (s *CollectSyncService) tryStart() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

func (s *CollectSyncService) finish() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.syncMutex.Unlock()
}

func (s *CollectSyncService) run(ctx context.Context) (*domain.CollectSummary, error) {
	startTime := s.now()

	runID, err := s.newRunID()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar id da execução")
	}

	summary := &domain.CollectSummary{
		RunID:     runID,
		StartedAt: startTime,
		Results:   []domain.ReportResult{},
	}

	if s.runBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runBudget)
		defer cancel()
	}

	logrus.WithField("run_id", runID).Info("Iniciando coleta do mLabs")

	err = s.collect(ctx, summary)

	summary.FinishedAt = s.now()
	elapsed := summary.FinishedAt.Sub(startTime)
	summary.ExecutionTime = formatDuration(elapsed)
	s.metrics.ObserveRun(elapsed, summary.FinishedAt, err)

	s.syncMutex.Lock()
	s.lastSummary = summary
	s.lastSyncCompletedAt = summary.FinishedAt
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"run_id":   runID,
			"duration": summary.ExecutionTime,
			"error":    err.Error(),
		}).Error("Erro na coleta do mLabs")
		return summary, err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":    runID,
		"duration":  summary.ExecutionTime,
		"found":     summary.ReportsFound,
		"collected": summary.ReportsCollected,
		"failed":    summary.ReportsFailed,
		"saved":     summary.ReportsSaved,
	}).Info("Coleta do mLabs concluída")

	return summary, nil
}

func (s *CollectSyncService) collect(ctx context.Context, summary *domain.CollectSummary) error {
	session, err := s.sessions.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBrowser, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar o navegador")
		}
	}()

	s.restoreCookies(ctx, session)

	outcomes, err := s.collector.Collect(ctx, session, func(ctx context.Context, result domain.ReportResult) {
		// O salvamento não é interrompido pelo fim do tempo da execução
		if err := s.reportRepo.SaveOrUpdate(context.WithoutCancel(ctx), &result); err != nil {
			s.metrics.ObserveSaveError()
			logrus.WithFields(logrus.Fields{
				"report": result.ReportName,
				"start":  result.Period.Start,
				"error":  err.Error(),
			}).Error("Erro ao salvar relatório coletado")
			return
		}
		summary.ReportsSaved++
	})
	if err != nil {
		return err
	}

	summary.ReportsFound = len(outcomes)
	for _, outcome := range outcomes {
		s.metrics.ObserveOutcome(outcome)

		if outcome.Succeeded() {
			summary.ReportsCollected++
			summary.Results = append(summary.Results, *outcome.Result)
			continue
		}

		summary.ReportsFailed++
		summary.Failures = append(summary.Failures, domain.CollectFailure{
			Report: outcome.Target.Name,
			Reason: outcome.Reason,
			Error:  errorString(outcome.Err),
		})
	}

	s.storeCookies(context.WithoutCancel(ctx), session)

	return nil
}

func (s *CollectSyncService) restoreCookies(ctx context.Context, session collecting.Session) {
	if s.cookies == nil {
		return
	}

	cookies, err := s.cookies.Load(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao carregar cookies da sessão")
		return
	}
	if len(cookies) == 0 {
		return
	}

	if err := session.SetCookies(ctx, cookies); err != nil {
		logrus.WithError(err).Warn("Erro ao restaurar cookies da sessão")
		return
	}
	logrus.WithField("cookies", len(cookies)).Info("Cookies da sessão restaurados")
}

func (s *CollectSyncService) storeCookies(ctx context.Context, session collecting.Session) {
	if s.cookies == nil {
		return
	}

	cookies, err := session.Cookies(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao ler cookies da sessão")
		return
	}

	if err := s.cookies.Save(ctx, cookies); err != nil {
		logrus.WithError(err).Warn("Erro ao salvar cookies da sessão")
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
