package telemetry

import (
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mlabs_collector"

const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// Metrics agrupa as métricas da coleta expostas em /metrics. Um *Metrics nil
// ignora todas as observações.
type Metrics struct {
	runs        *prometheus.CounterVec
	reports     *prometheus.CounterVec
	saveErrors  prometheus.Counter
	runDuration prometheus.Histogram
	lastSuccess prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Execuções de coleta por status.",
		}, []string{"status"}),
		reports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Relatórios processados por resultado.",
		}, []string{"outcome"}),
		saveErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_errors_total",
			Help:      "Erros ao salvar relatórios coletados.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duração das execuções de coleta.",
			Buckets:   []float64{15, 30, 60, 90, 120, 180, 240, 300, 600},
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Horário da última execução concluída sem erro fatal.",
		}),
	}
}

// ObserveOutcome conta um relatório como "collected" ou pelo motivo da falha
func (m *Metrics) ObserveOutcome(outcome domain.ReportOutcome) {
	if m == nil {
		return
	}
	label := "collected"
	if !outcome.Succeeded() {
		label = string(outcome.Reason)
	}
	m.reports.WithLabelValues(label).Inc()
}

func (m *Metrics) ObserveSaveError() {
	if m == nil {
		return
	}
	m.saveErrors.Inc()
}

func (m *Metrics) ObserveRun(duration time.Duration, finishedAt time.Time, err error) {
	if m == nil {
		return
	}

	m.runDuration.Observe(duration.Seconds())
	if err != nil {
		m.runs.WithLabelValues(RunStatusFailed).Inc()
		return
	}

	m.runs.WithLabelValues(RunStatusSuccess).Inc()
	m.lastSuccess.Set(float64(finishedAt.Unix()))
}
