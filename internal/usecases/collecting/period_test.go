package collecting

import (
	"strings"
	"testing"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.Period
		ok       bool
	}{
		{
			name:     "Intervalo com espaços",
			text:     "Período: 01/06/2025 - 30/06/2025",
			expected: domain.Period{Start: "2025-06-01", End: "2025-06-30"},
			ok:       true,
		},
		{
			name:     "Intervalo sem espaços",
			text:     "15/07/2025-15/07/2025",
			expected: domain.Period{Start: "2025-07-15", End: "2025-07-15"},
			ok:       true,
		},
		{
			name:     "Intervalo com espaço não separável",
			text:     "01/07/2025\u00a0-\u00a007/07/2025",
			expected: domain.Period{Start: "2025-07-01", End: "2025-07-07"},
			ok:       true,
		},
		{
			name: "Data inexistente",
			text: "31/02/2025 - 01/03/2025",
		},
		{
			name: "Início depois do fim",
			text: "10/07/2025 - 01/07/2025",
		},
		{
			name: "Sem intervalo",
			text: "Últimos 7 dias",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, ok := ParseDateRange(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, period)
		})
	}
}

func TestParseDateRange_RoundTrip(t *testing.T) {
	inputs := []string{
		"01/01/2024 - 31/12/2024",
		"29/02/2024 - 01/03/2024",
		"09/10/2025 - 09/10/2025",
	}

	reorder := func(date string) string {
		parts := strings.Split(date, "-")
		return parts[2] + "/" + parts[1] + "/" + parts[0]
	}

	for _, input := range inputs {
		period, ok := ParseDateRange(input)
		assert.True(t, ok)
		assert.Equal(t, input, reorder(period.Start)+" - "+reorder(period.End))
	}
}

func TestPeriodNormalizer_Extract(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	normalizer := NewPeriodNormalizer(fixedClock(time.Date(2025, 7, 1, 0, 30, 0, 0, brt)))
	yesterday := domain.Period{Start: "2025-06-30", End: "2025-06-30"}

	tests := []struct {
		name     string
		html     string
		expected domain.Period
	}{
		{
			name:     "Sem elemento de período usa ontem",
			html:     `<body><p>01/06/2025 - 30/06/2025</p></body>`,
			expected: yesterday,
		},
		{
			name:     "Documento vazio usa ontem",
			html:     "",
			expected: yesterday,
		},
		{
			name:     "Elemento de período do dashboard",
			html:     `<div class="date-range">01/06/2025 - 07/06/2025</div>`,
			expected: domain.Period{Start: "2025-06-01", End: "2025-06-07"},
		},
		{
			name:     "Elemento de período com &nbsp; em volta do traço",
			html:     `<div class="periodo">01/07/2025&nbsp;-&nbsp;07/07/2025</div>`,
			expected: domain.Period{Start: "2025-07-01", End: "2025-07-07"},
		},
		{
			name: "Primeiro elemento inválido é ignorado",
			html: `<div class="periodo">Personalizado</div>
				<span data-testid="date-range">20/06/2025 - 21/06/2025</span>`,
			expected: domain.Period{Start: "2025-06-20", End: "2025-06-21"},
		},
		{
			name:     "Seletor do modal de período",
			html:     `<div class="dg-daterange-display">29/06/2025 - 29/06/2025</div>`,
			expected: domain.Period{Start: "2025-06-29", End: "2025-06-29"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizer.Extract(newDoc(t, tt.html)))
		})
	}
}

func TestPeriodNormalizer_NilDocument(t *testing.T) {
	normalizer := NewPeriodNormalizer(fixedClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, domain.Period{Start: "2024-12-31", End: "2024-12-31"}, normalizer.Extract(nil))
}
