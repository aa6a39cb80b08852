package collecting

import (
	"regexp"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	dateRangeSelector = `[data-testid="date-range"], .date-range, .periodo, .dg-daterange-display`
	displayDateLayout = "02/01/2006"
)

var dateRangePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})[\s\x{00A0}]*-[\s\x{00A0}]*(\d{2}/\d{2}/\d{4})`)

// PeriodNormalizer converte o período exibido no dashboard para datas YYYY-MM-DD
type PeriodNormalizer struct {
	now func() time.Time
}

func NewPeriodNormalizer(now func() time.Time) *PeriodNormalizer {
	if now == nil {
		now = time.Now
	}
	return &PeriodNormalizer{now: now}
}

// Yesterday é o período usado quando o dashboard não exibe um intervalo válido
func (n *PeriodNormalizer) Yesterday() domain.Period {
	return domain.SingleDayPeriod(n.now().AddDate(0, 0, -1))
}

// Extract procura o intervalo nos elementos de período do snapshot.
// Nunca falha: sem intervalo válido retorna ontem.
func (n *PeriodNormalizer) Extract(doc *goquery.Document) (period domain.Period) {
	period = n.Yesterday()

	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Warn("Erro ao extrair período, usando ontem")
			period = n.Yesterday()
		}
	}()

	if doc == nil {
		return period
	}

	doc.Find(dateRangeSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found, ok := ParseDateRange(s.Text())
		if ok {
			period = found
		}
		return !ok
	})

	return period
}

// ParseDateRange lê "DD/MM/YYYY - DD/MM/YYYY". Datas inexistentes ou
// início posterior ao fim são rejeitados.
func ParseDateRange(text string) (domain.Period, bool) {
	match := dateRangePattern.FindStringSubmatch(text)
	if match == nil {
		return domain.Period{}, false
	}

	start, err := time.Parse(displayDateLayout, match[1])
	if err != nil {
		return domain.Period{}, false
	}
	end, err := time.Parse(displayDateLayout, match[2])
	if err != nil {
		return domain.Period{}, false
	}
	if start.After(end) {
		return domain.Period{}, false
	}

	return domain.Period{
		Start: start.Format(time.DateOnly),
		End:   end.Format(time.DateOnly),
	}, true
}
