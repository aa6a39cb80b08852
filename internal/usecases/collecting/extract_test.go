package collecting

import (
	"strings"
	"testing"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractIndicators(t *testing.T) {
	tests := []struct {
		name     string
		family   domain.Family
		html     string
		validate func(t *testing.T, indicators []domain.Indicator)
	}{
		{
			name:   "Documento vazio não gera indicadores",
			family: domain.FamilyFacebook,
			html:   "",
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.NotNil(t, indicators)
				assert.Empty(t, indicators)
			},
		},
		{
			name:   "Widget de visão geral do Facebook",
			family: domain.FamilyFacebook,
			html: `<html><body>
				<div data-testid="overview">
					<div class="metric"><span class="metric-name"> Reactions </span><span class="metric-value">1,520</span></div>
					<div class="kpi"><h3>Shares</h3><span class="value">12.5%</span></div>
					<div data-metric="clicks"><h4>Clicks</h4><span class="number">n/a</span></div>
					<div class="metric"><span class="metric-value">99</span></div>
				</div>
			</body></html>`,
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.Equal(t, []domain.Indicator{
					{Group: OverviewGroup, Name: "Reactions", Value: 1520},
					{Group: OverviewGroup, Name: "Shares", Value: 12.5},
					{Group: OverviewGroup, Name: "Clicks", Value: 0},
				}, indicators)
			},
		},
		{
			name:   "Métrica sem elemento de valor vale zero",
			family: domain.FamilyInstagram,
			html:   `<div class="overview-widget"><div class="metric"><span class="label">Saves</span></div></div>`,
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.Equal(t, []domain.Indicator{{Group: OverviewGroup, Name: "Saves", Value: 0}}, indicators)
			},
		},
		{
			name:   "Padrões de texto do Instagram",
			family: domain.FamilyInstagram,
			html: `<html><body>
				<p>Seguidores: 1234</p>
				<p>Alcance 560</p>
				<p>Taxa de engajamento: 4,56</p>
			</body></html>`,
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.Equal(t, []domain.Indicator{
					{Group: OverviewGroup, Name: "Seguidores", Value: 1234},
					{Group: OverviewGroup, Name: "Alcance", Value: 560},
					{Group: OverviewGroup, Name: "Taxa de engajamento", Value: 4.56},
				}, indicators)
			},
		},
		{
			name:   "Espaço não separável entre rótulo e número",
			family: domain.FamilyInstagram,
			html:   `<body><p>Seguidores:&nbsp;1234</p><p>Curtidas&nbsp;87</p></body>`,
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.Equal(t, []domain.Indicator{
					{Group: OverviewGroup, Name: "Seguidores", Value: 1234},
					{Group: OverviewGroup, Name: "Curtidas", Value: 87},
				}, indicators)
			},
		},
		{
			name:   "Taxa de engajamento para no ponto de milhar",
			family: domain.FamilyInstagram,
			html:   `<body><p>Taxa de engajamento: 1.234,5</p></body>`,
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.Equal(t, []domain.Indicator{
					{Group: OverviewGroup, Name: "Taxa de engajamento", Value: 1},
				}, indicators)
			},
		},
		{
			name:   "Padrões de texto do Facebook ignoram maiúsculas",
			family: domain.FamilyFacebook,
			html:   `<body><span>ALCANCE TOTAL: 800</span> <span>novas curtidas 15</span></body>`,
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.Equal(t, []domain.Indicator{
					{Group: OverviewGroup, Name: "Alcance total", Value: 800},
					{Group: OverviewGroup, Name: "Novas curtidas", Value: 15},
				}, indicators)
			},
		},
		{
			name:   "As duas estratégias são somadas sem deduplicar",
			family: domain.FamilyInstagram,
			html: `<body><div class="visao-geral">
				<div class="metric"><h4>Seguidores</h4> <span class="value">10</span></div>
			</div></body>`,
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.Equal(t, []domain.Indicator{
					{Group: OverviewGroup, Name: "Seguidores", Value: 10},
					{Group: OverviewGroup, Name: "Seguidores", Value: 10},
				}, indicators)
			},
		},
		{
			name:   "Família desconhecida não tenta nenhuma estratégia",
			family: domain.FamilyUnknown,
			html:   `<body><p>Seguidores: 1234</p></body>`,
			validate: func(t *testing.T, indicators []domain.Indicator) {
				assert.NotNil(t, indicators)
				assert.Empty(t, indicators)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, ExtractIndicators(tt.family, newDoc(t, tt.html)))
		})
	}
}

func TestExtractIndicators_NilDocument(t *testing.T) {
	assert.Empty(t, ExtractFacebookMetrics(nil))
	assert.Empty(t, ExtractInstagramMetrics(nil))
}

func TestTextPatternTier_FirstMatchPerLabel(t *testing.T) {
	indicators := textPatternTier("Seguidores: 10 ... Seguidores: 20", instagramPatterns)

	require.Len(t, indicators, 1)
	assert.Equal(t, float64(10), indicators[0].Value)
}

func TestParseMetricValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1520", 1520},
		{"1,520", 1520},
		{"12.5%", 12.5},
		{"-3 pts", -3},
		{"R$ 10", 10},
		{"", 0},
		{"n/a", 0},
		{"-", 0},
		{"1.2.3", 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseMetricValue(tt.input))
		})
	}
}

func TestParseDecimalComma(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"4,56", 4.56},
		{"1234,5", 1234.5},
		{"1.234", 1.234},
		{"1.234,5", 1.234},
		{"10", 10},
		{",", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseDecimalComma(tt.input))
		})
	}
}
