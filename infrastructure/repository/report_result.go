package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/database/postgres"
	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	reportsTable = "mlabs_reports"

	reportColumns = "id, report_name, to_char(period_start, 'YYYY-MM-DD'), to_char(period_end, 'YYYY-MM-DD'), " +
		"to_char(collected_on, 'YYYY-MM-DD'), indicators, created_at, updated_at"
)

// ReportResultRepository persiste os relatórios coletados. Um registro é
// identificado por (report_name, period_start); salvar de novo sobrescreve.
type ReportResultRepository interface {
	SaveOrUpdate(ctx context.Context, result *domain.ReportResult) error
	GetByReportAndStart(ctx context.Context, reportName, periodStart string) (*domain.StoredReport, error)
	ListByReport(ctx context.Context, reportName string, limit uint64) ([]*domain.StoredReport, error)
	Ping(ctx context.Context) error
}

type reportResultRepository struct {
	conn postgres.Conn
}

func NewReportResultRepository(conn postgres.Conn) ReportResultRepository {
	return &reportResultRepository{
		conn: conn,
	}
}

func (r *reportResultRepository) SaveOrUpdate(ctx context.Context, result *domain.ReportResult) error {
	query, args, err := buildUpsertQuery(result, uuid.NewString())
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *reportResultRepository) GetByReportAndStart(ctx context.Context, reportName, periodStart string) (*domain.StoredReport, error) {
	query, args, err := squirrel.
		Select(reportColumns).
		From(reportsTable).
		Where(squirrel.Eq{"report_name": reportName, "period_start": periodStart}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	report, err := scanReport(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear relatório: %w", err)
	}

	return report, nil
}

func (r *reportResultRepository) ListByReport(ctx context.Context, reportName string, limit uint64) ([]*domain.StoredReport, error) {
	builder := squirrel.
		Select(reportColumns).
		From(reportsTable).
		OrderBy("period_start DESC").
		PlaceholderFormat(squirrel.Dollar)

	if reportName != "" {
		builder = builder.Where(squirrel.Eq{"report_name": reportName})
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.StoredReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear relatórios: %w", err)
		}
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reports, nil
}

func (r *reportResultRepository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

func buildUpsertQuery(result *domain.ReportResult, id string) (string, []interface{}, error) {
	if result == nil {
		return "", nil, errors.New("relatório vazio")
	}

	indicators := result.Indicators
	if indicators == nil {
		indicators = []domain.Indicator{}
	}
	indicatorsJSON, err := json.Marshal(indicators)
	if err != nil {
		return "", nil, fmt.Errorf("erro ao serializar indicadores para JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(reportsTable).
		Columns("id", "report_name", "period_start", "period_end", "collected_on", "indicators").
		Values(
			id,
			result.ReportName,
			result.Period.Start,
			result.Period.End,
			result.CollectedOn,
			indicatorsJSON,
		).
		Suffix(`
			ON CONFLICT (report_name, period_start) DO UPDATE SET
				period_end = EXCLUDED.period_end,
				collected_on = EXCLUDED.collected_on,
				indicators = EXCLUDED.indicators,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row scanner) (*domain.StoredReport, error) {
	report := &domain.StoredReport{}
	var indicatorsJSON []byte

	err := row.Scan(
		&report.ID,
		&report.ReportName,
		&report.Period.Start,
		&report.Period.End,
		&report.CollectedOn,
		&indicatorsJSON,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	report.Indicators = []domain.Indicator{}
	if indicatorsJSON != nil {
		if err := json.Unmarshal(indicatorsJSON, &report.Indicators); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de indicadores: %w", err)
		}
	}

	return report, nil
}
