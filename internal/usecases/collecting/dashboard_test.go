package collecting_test

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/collecting/mocks"
	"go.uber.org/mock/gomock"
)

const (
	baseURL    = "https://analytics.mlabs.io"
	authURL    = baseURL + "/auth/token"
	reportsURL = baseURL + "/reports"
)

// dashboard simula o mLabs por trás de um MockPage
type dashboard struct {
	current   string
	pages     map[string]string
	redirects map[string]string
	failures  map[string]error
	clickable map[string]bool // trecho do seletor ou texto do elemento
	clicks    []string
}

func newDashboard() *dashboard {
	return &dashboard{
		pages:     map[string]string{},
		redirects: map[string]string{},
		failures:  map[string]error{},
		clickable: map[string]bool{},
	}
}

func (d *dashboard) page(ctrl *gomock.Controller) *mocks.MockPage {
	page := mocks.NewMockPage(ctrl)

	page.EXPECT().Navigate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, url string) error {
		if err := d.failures[url]; err != nil {
			return err
		}
		d.current = url
		if to, ok := d.redirects[url]; ok {
			d.current = to
		}
		return nil
	}).AnyTimes()

	page.EXPECT().CurrentURL(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
		return d.current, nil
	}).AnyTimes()

	page.EXPECT().HTML(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
		return d.pages[d.current], nil
	}).AnyTimes()

	page.EXPECT().WaitForSelector(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ time.Duration) (bool, error) {
			html := d.pages[d.current]
			return strings.Contains(html, "<table") || strings.Contains(html, `data-testid="reports-table"`), nil
		}).AnyTimes()

	page.EXPECT().Click(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, selector string, _ time.Duration) (bool, error) {
			for key, ok := range d.clickable {
				if ok && strings.Contains(selector, key) {
					d.clicks = append(d.clicks, key)
					return true, nil
				}
			}
			return false, nil
		}).AnyTimes()

	page.EXPECT().ClickText(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, selector, pattern string, _ time.Duration) (bool, error) {
			for label, ok := range d.clickable {
				if ok && regexp.MustCompile(pattern).MatchString(label) {
					d.clicks = append(d.clicks, label)
					return true, nil
				}
			}
			return false, nil
		}).AnyTimes()

	return page
}

type report struct {
	id   string
	name string
	html string
}

func (r report) url() string {
	return baseURL + "/report/" + r.id
}

func listingHTML(reports ...report) string {
	var rows strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&rows, `<tr><td><a href="/report/%s">%s</a></td><td><a href="/report/%s"><i class="icon"></i></a></td></tr>`, r.id, r.name, r.id)
	}
	return `<html><body><table data-testid="reports-table">` + rows.String() + `</table></body></html>`
}

func overviewHTML(names ...string) string {
	var metrics strings.Builder
	for i, name := range names {
		fmt.Fprintf(&metrics, `<div class="metric"><span class="metric-name">%s</span><span class="metric-value">%d</span></div>`, name, (i+1)*100)
	}
	return `<html><body><div data-testid="overview">` + metrics.String() + `</div></body></html>`
}

var businessReports = []report{
	{id: "685edc6e06042600371c10a7", name: "Adenis Facebook", html: overviewHTML("Reactions", "Shares", "Clicks")},
	{id: "685edc1d06042600371c0778", name: "Adenis Instagram", html: overviewHTML("Stories", "Saves", "Shares")},
	{id: "685edb4e06042600371bf224", name: "Facebook Tecnovix", html: overviewHTML("Reactions", "Shares", "Clicks")},
	{id: "685edabb06042600371bd88a", name: "Tecnovix Instagram", html: overviewHTML("Stories", "Saves", "Shares")},
}

// withBusinessReports monta a listagem com os quatro relatórios de negócio e um extra
func (d *dashboard) withBusinessReports() *dashboard {
	extra := report{id: "999", name: "Concorrente Facebook"}
	d.pages[reportsURL] = listingHTML(append(append([]report{}, businessReports...), extra)...)
	for _, r := range businessReports {
		d.pages[r.url()] = r.html
	}
	return d
}

func testConfig() *config.Config {
	return &config.Config{
		Mlabs: config.Mlabs{
			AuthURL:       authURL,
			BaseURL:       baseURL,
			ReportsPath:   "/reports",
			AnalyticsHost: "analytics.mlabs.io",
		},
		Collect: config.Collect{
			ListingTimeout: 10 * time.Second,
			PeriodStepWait: 5 * time.Second,
		},
	}
}

func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
