package collecting

import (
	"regexp"
	"strings"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// OverviewGroup é o grupo de todos os indicadores da "Visão Geral"
const OverviewGroup = "Overview"

const (
	overviewSelector    = `[data-testid="overview"], .overview-widget, .visao-geral`
	metricSelector      = `[data-metric], .metric, .kpi`
	metricNameSelector  = `.metric-name, .label, h3, h4`
	metricValueSelector = `.metric-value, .value, .number`
)

// textPattern é um rótulo buscado no texto da página, seguido do número.
// O separador aceita o espaço não separável (&nbsp;) usado pelo dashboard.
type textPattern struct {
	label   string
	decimal bool
	re      *regexp.Regexp
}

func newTextPattern(label string, decimal bool) textPattern {
	number := `(\d+)`
	if decimal {
		number = `([\d,]+)`
	}
	return textPattern{
		label:   label,
		decimal: decimal,
		re:      regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `[:\s\x{00A0}]+` + number),
	}
}

var facebookPatterns = []textPattern{
	newTextPattern("Visualizações de página", false),
	newTextPattern("Alcance total", false),
	newTextPattern("Total de Posts", false),
	newTextPattern("Novas curtidas", false),
	newTextPattern("Total de Curtidas", false),
	newTextPattern("Impressões de página", false),
}

var instagramPatterns = []textPattern{
	newTextPattern("Seguidores", false),
	newTextPattern("Começaram a Seguir", false),
	newTextPattern("Publicações", false),
	newTextPattern("Visualizações", false),
	newTextPattern("Alcance", false),
	newTextPattern("Curtidas", false),
	newTextPattern("Comentários", false),
	newTextPattern("Total de Interações", false),
	newTextPattern("Taxa de engajamento", true),
}

// ExtractIndicators escolhe o extrator pela família do relatório.
// Família desconhecida não produz indicadores.
func ExtractIndicators(family domain.Family, doc *goquery.Document) []domain.Indicator {
	switch family {
	case domain.FamilyFacebook:
		return ExtractFacebookMetrics(doc)
	case domain.FamilyInstagram:
		return ExtractInstagramMetrics(doc)
	default:
		return []domain.Indicator{}
	}
}

func ExtractFacebookMetrics(doc *goquery.Document) []domain.Indicator {
	return extractTiers(doc, facebookPatterns)
}

func ExtractInstagramMetrics(doc *goquery.Document) []domain.Indicator {
	return extractTiers(doc, instagramPatterns)
}

// extractTiers junta os indicadores do widget com os do texto da página, sem deduplicar
func extractTiers(doc *goquery.Document, patterns []textPattern) (indicators []domain.Indicator) {
	indicators = []domain.Indicator{}
	if doc == nil {
		return indicators
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("Erro inesperado ao extrair indicadores")
			indicators = []domain.Indicator{}
		}
	}()

	indicators = append(indicators, overviewTier(doc)...)
	indicators = append(indicators, textPatternTier(doc.Find("body").Text(), patterns)...)

	return indicators
}

// overviewTier lê as métricas do widget "Visão Geral"
func overviewTier(doc *goquery.Document) []domain.Indicator {
	indicators := []domain.Indicator{}

	overview := doc.Find(overviewSelector).First()
	if overview.Length() == 0 {
		return indicators
	}

	overview.Find(metricSelector).Each(func(_ int, metric *goquery.Selection) {
		name := strings.TrimSpace(metric.Find(metricNameSelector).First().Text())
		if name == "" {
			return
		}

		var value float64
		if valueEl := metric.Find(metricValueSelector).First(); valueEl.Length() > 0 {
			value = parseMetricValue(valueEl.Text())
		}

		indicators = append(indicators, domain.Indicator{
			Group: OverviewGroup,
			Name:  name,
			Value: value,
		})
	})

	return indicators
}

// textPatternTier procura cada rótulo no texto completo, na ordem da lista.
// Só a primeira ocorrência de cada rótulo é usada.
func textPatternTier(text string, patterns []textPattern) []domain.Indicator {
	indicators := []domain.Indicator{}

	for _, p := range patterns {
		match := p.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		var value float64
		if p.decimal {
			value = parseDecimalComma(match[1])
		} else {
			value = parseNumericPrefix(match[1])
		}

		indicators = append(indicators, domain.Indicator{
			Group: OverviewGroup,
			Name:  p.label,
			Value: value,
		})
	}

	return indicators
}
