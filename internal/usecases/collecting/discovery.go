package collecting

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	reportsListingSelector = `table, [data-testid="reports-table"]`
	reportLinkSelector     = `a[href*="/report/"]`
	reportPathPrefix       = "/report/"
)

// Discovery encontra os relatórios na listagem já carregada
type Discovery struct {
	baseURL string
	seeds   []domain.ReportTarget
	timeout time.Duration
}

func NewDiscovery(baseURL string, seeds []domain.ReportTarget, timeout time.Duration) *Discovery {
	return &Discovery{
		baseURL: baseURL,
		seeds:   seeds,
		timeout: timeout,
	}
}

// Discover nunca falha: sem listagem, retorna uma lista vazia
func (d *Discovery) Discover(ctx context.Context, page Page) []domain.ReportTarget {
	found, err := page.WaitForSelector(ctx, reportsListingSelector, d.timeout)
	if err != nil || !found {
		logrus.WithFields(logrus.Fields{
			"selector": reportsListingSelector,
			"timeout":  d.timeout.String(),
			"error":    errorString(err),
		}).Warn("Listagem de relatórios não encontrada")
		return []domain.ReportTarget{}
	}

	html, err := page.HTML(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao ler a listagem de relatórios")
		return []domain.ReportTarget{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logrus.WithError(err).Warn("Erro ao interpretar a listagem de relatórios")
		return []domain.ReportTarget{}
	}

	links := ParseReportLinks(doc, d.baseURL)
	targets := MatchTargets(links, d.seeds)

	logrus.WithFields(logrus.Fields{
		"links":   len(links),
		"targets": len(targets),
	}).Info("Relatórios encontrados na listagem")

	return targets
}

// ParseReportLinks lista os links de relatório da página, na ordem do documento
func ParseReportLinks(doc *goquery.Document, baseURL string) []domain.ReportTarget {
	base, _ := url.Parse(baseURL)
	seen := make(map[string]bool)
	links := []domain.ReportTarget{}

	doc.Find(reportLinkSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}

		id := reportID(href)
		name := strings.TrimSpace(s.Text())
		if id == "" || name == "" || seen[id] {
			return
		}
		seen[id] = true

		links = append(links, domain.ReportTarget{
			ID:     id,
			Name:   name,
			Family: domain.FamilyFromName(name),
			URL:    resolveURL(base, href),
		})
	})

	return links
}

// MatchTargets mantém os links cujo nome contém o nome de algum relatório de
// negócio, copiando o código desse relatório. A URL encontrada prevalece.
func MatchTargets(links, seeds []domain.ReportTarget) []domain.ReportTarget {
	targets := []domain.ReportTarget{}

	for _, link := range links {
		seed, ok := matchSeed(link.Name, seeds)
		if !ok {
			continue
		}
		link.Code = seed.Code
		targets = append(targets, link)
	}

	return targets
}

// matchSeed compara com diferença entre maiúsculas e minúsculas, como o nome
// aparece na listagem do dashboard
func matchSeed(name string, seeds []domain.ReportTarget) (domain.ReportTarget, bool) {
	for _, seed := range seeds {
		if seed.Name != "" && strings.Contains(name, seed.Name) {
			return seed, true
		}
	}
	return domain.ReportTarget{}, false
}

func reportID(href string) string {
	idx := strings.Index(href, reportPathPrefix)
	if idx < 0 {
		return ""
	}

	id := href[idx+len(reportPathPrefix):]
	if cut := strings.IndexAny(id, "/?#"); cut >= 0 {
		id = id[:cut]
	}
	return id
}

func resolveURL(base *url.URL, raw string) string {
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
