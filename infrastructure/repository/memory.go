package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/google/uuid"
)

type reportKey struct {
	reportName  string
	periodStart string
}

// MemoryReportRepository guarda os relatórios em memória, usado quando não há
// DATABASE_URL configurada
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[reportKey]*domain.StoredReport
	now     func() time.Time
}

var _ ReportResultRepository = (*MemoryReportRepository)(nil)

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{
		reports: make(map[reportKey]*domain.StoredReport),
		now:     time.Now,
	}
}

func (m *MemoryReportRepository) SaveOrUpdate(_ context.Context, result *domain.ReportResult) error {
	if result == nil {
		return nil
	}

	key := reportKey{reportName: result.ReportName, periodStart: result.Period.Start}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.reports[key]
	if !ok {
		stored = &domain.StoredReport{ID: uuid.NewString(), CreatedAt: now}
		m.reports[key] = stored
	}
	stored.ReportResult = cloneResult(*result)
	stored.UpdatedAt = now

	return nil
}

func (m *MemoryReportRepository) GetByReportAndStart(_ context.Context, reportName, periodStart string) (*domain.StoredReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.reports[reportKey{reportName: reportName, periodStart: periodStart}]
	if !ok {
		return nil, nil
	}

	report := *stored
	report.ReportResult = cloneResult(stored.ReportResult)
	return &report, nil
}

func (m *MemoryReportRepository) ListByReport(_ context.Context, reportName string, limit uint64) ([]*domain.StoredReport, error) {
	m.mu.RLock()
	out := make([]*domain.StoredReport, 0, len(m.reports))
	for key, stored := range m.reports {
		if reportName != "" && key.reportName != reportName {
			continue
		}
		report := *stored
		report.ReportResult = cloneResult(stored.ReportResult)
		out = append(out, &report)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Period.Start == out[j].Period.Start {
			return out[i].ReportName < out[j].ReportName
		}
		return out[i].Period.Start > out[j].Period.Start
	})

	if limit > 0 && uint64(len(out)) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (m *MemoryReportRepository) Ping(context.Context) error {
	return nil
}

func cloneResult(result domain.ReportResult) domain.ReportResult {
	result.Indicators = append([]domain.Indicator{}, result.Indicators...)
	return result
}
