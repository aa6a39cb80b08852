package repository

import (
	"context"
	"testing"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReportRepository_SaveOrUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()

	first := sampleResult()
	require.NoError(t, repo.SaveOrUpdate(ctx, first))

	stored, err := repo.GetByReportAndStart(ctx, "Adenis Facebook", "2025-07-09")
	require.NoError(t, err)
	require.NotNil(t, stored)
	id := stored.ID

	second := sampleResult()
	second.CollectedOn = "2025-07-11"
	second.Indicators = []domain.Indicator{{Group: "Overview", Name: "Alcance total", Value: 1200}}
	require.NoError(t, repo.SaveOrUpdate(ctx, second))

	stored, err = repo.GetByReportAndStart(ctx, "Adenis Facebook", "2025-07-09")
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "2025-07-11", stored.CollectedOn)
	assert.Equal(t, float64(1200), stored.Indicators[0].Value)

	all, err := repo.ListByReport(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryReportRepository_GetByReportAndStart_NotFound(t *testing.T) {
	stored, err := NewMemoryReportRepository().GetByReportAndStart(context.Background(), "Adenis Facebook", "2025-07-09")
	assert.NoError(t, err)
	assert.Nil(t, stored)
}

func TestMemoryReportRepository_ListByReport(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()

	for _, r := range []domain.ReportResult{
		{ReportName: "Adenis Facebook", Period: domain.Period{Start: "2025-07-08", End: "2025-07-08"}},
		{ReportName: "Adenis Facebook", Period: domain.Period{Start: "2025-07-09", End: "2025-07-09"}},
		{ReportName: "Adenis Instagram", Period: domain.Period{Start: "2025-07-09", End: "2025-07-09"}},
	} {
		r := r
		require.NoError(t, repo.SaveOrUpdate(ctx, &r))
	}

	reports, err := repo.ListByReport(ctx, "Adenis Facebook", 0)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "2025-07-09", reports[0].Period.Start)
	assert.Equal(t, "2025-07-08", reports[1].Period.Start)

	reports, err = repo.ListByReport(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "Adenis Facebook", reports[0].ReportName)
	assert.Equal(t, "Adenis Instagram", reports[1].ReportName)
}

func TestMemoryReportRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()
	require.NoError(t, repo.SaveOrUpdate(ctx, sampleResult()))

	stored, err := repo.GetByReportAndStart(ctx, "Adenis Facebook", "2025-07-09")
	require.NoError(t, err)
	stored.Indicators[0].Value = 0

	again, err := repo.GetByReportAndStart(ctx, "Adenis Facebook", "2025-07-09")
	require.NoError(t, err)
	assert.Equal(t, float64(900), again.Indicators[0].Value)
}
