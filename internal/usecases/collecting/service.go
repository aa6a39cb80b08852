package collecting

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	periodControlSelector  = `[data-testid="date-picker"], .date-picker, .dg-daterange-display, button[aria-label*="período"], button[aria-label*="period"]`
	periodDropdownSelector = `.select-input__input`
	periodOptionSelector   = `li, button, span, [role="option"]`
	periodOptionPattern    = `^\s*(Ontem|Yesterday|Último dia|Last day)`
	periodValueSelector    = `[data-value="yesterday"], [data-value="last-day"]`
	periodConfirmSelector  = `button`
	periodConfirmPattern   = `^\s*(Salvar|Save)\s*$`
)

// Timings são as esperas fixas entre as etapas da coleta. O dashboard
// continua renderizando depois que a rede fica ociosa.
type Timings struct {
	AuthSettle      time.Duration
	ListingSettle   time.Duration
	ListingTimeout  time.Duration
	ReportSettle    time.Duration
	PeriodSettle    time.Duration
	PeriodStepDelay time.Duration
	PeriodStepWait  time.Duration
}

type Service struct {
	authURL       string
	reportsURL    string
	analyticsHost string
	timings       Timings
	discovery     *Discovery
	period        *PeriodNormalizer
	now           func() time.Time
	sleep         func(ctx context.Context, d time.Duration) error
}

var _ Collector = (*Service)(nil)

type ServiceOption func(*Service)

// WithClock define o relógio usado para "ontem" e para a data da coleta
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func WithSleep(sleep func(ctx context.Context, d time.Duration) error) ServiceOption {
	return func(s *Service) {
		s.sleep = sleep
	}
}

func NewService(cfg *config.Config, opts ...ServiceOption) *Service {
	seeds := DefaultTargets(cfg.Mlabs.BaseURL)
	if configured := ConfiguredTargets(cfg.Mlabs.ReportNames); len(configured) > 0 {
		seeds = configured
	}

	timings := Timings{
		AuthSettle:      cfg.Collect.AuthSettle,
		ListingSettle:   cfg.Collect.ListingSettle,
		ListingTimeout:  cfg.Collect.ListingTimeout,
		ReportSettle:    cfg.Collect.ReportSettle,
		PeriodSettle:    cfg.Collect.PeriodSettle,
		PeriodStepDelay: cfg.Collect.PeriodStepDelay,
		PeriodStepWait:  cfg.Collect.PeriodStepWait,
	}

	s := &Service{
		authURL:       cfg.Mlabs.AuthURL,
		reportsURL:    cfg.Mlabs.ReportsURL(),
		analyticsHost: cfg.Mlabs.AnalyticsHost,
		timings:       timings,
		discovery:     NewDiscovery(cfg.Mlabs.BaseURL, seeds, timings.ListingTimeout),
		now:           time.Now,
		sleep:         sleepContext,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.analyticsHost == "" {
		if base, err := url.Parse(cfg.Mlabs.BaseURL); err == nil {
			s.analyticsHost = base.Hostname()
		}
	}
	s.period = NewPeriodNormalizer(s.now)

	logrus.WithField("targets", TargetNames(seeds)).Debug("coleta: relatórios alvo configurados")

	return s
}

// CollectAll retorna apenas os relatórios coletados com sucesso. Só falha
// quando a autenticação ou a listagem de relatórios falham.
func (s *Service) CollectAll(ctx context.Context, page Page) ([]domain.ReportResult, error) {
	outcomes, err := s.Collect(ctx, page, nil)
	if err != nil {
		return nil, err
	}
	return Results(outcomes), nil
}

// Collect processa os relatórios em sequência e retorna o resultado de cada um.
// onResult é chamado a cada relatório coletado, antes do próximo começar.
func (s *Service) Collect(ctx context.Context, page Page, onResult ResultHandler) ([]domain.ReportOutcome, error) {
	if err := s.authenticate(ctx, page); err != nil {
		return nil, err
	}
	logrus.Info("Autenticação no mLabs realizada com sucesso")

	if err := s.openListing(ctx, page); err != nil {
		return nil, err
	}

	targets := s.discovery.Discover(ctx, page)
	if len(targets) == 0 {
		logrus.Warn("Nenhum relatório encontrado para coleta")
		return []domain.ReportOutcome{}, nil
	}

	outcomes := make([]domain.ReportOutcome, 0, len(targets))
	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			logrus.WithFields(logrus.Fields{
				"remaining": len(targets) - i,
				"error":     err.Error(),
			}).Warn("Tempo de execução esgotado, relatórios restantes não serão coletados")

			for _, skipped := range targets[i:] {
				outcomes = append(outcomes, failure(skipped, domain.FailureCanceled, err))
			}
			break
		}

		logrus.WithFields(logrus.Fields{
			"code":   target.Code,
			"report": target.Name,
			"family": target.Family,
		}).Info("Processando relatório")

		outcome := s.collectReport(ctx, page, target)
		outcomes = append(outcomes, outcome)

		if !outcome.Succeeded() {
			logrus.WithFields(logrus.Fields{
				"code":   target.Code,
				"report": target.Name,
				"reason": outcome.Reason,
				"error":  errorString(outcome.Err),
			}).Error("Erro ao processar relatório")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"report":     target.Name,
			"indicators": len(outcome.Result.Indicators),
			"start":      outcome.Result.Period.Start,
			"end":        outcome.Result.Period.End,
		}).Info("Relatório processado com sucesso")

		if onResult != nil {
			onResult(ctx, *outcome.Result)
		}
	}

	return outcomes, nil
}

// Results reduz os resultados por relatório aos que foram coletados
func Results(outcomes []domain.ReportOutcome) []domain.ReportResult {
	results := make([]domain.ReportResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Succeeded() {
			results = append(results, *o.Result)
		}
	}
	return results
}

func (s *Service) authenticate(ctx context.Context, page Page) error {
	if s.authURL == "" {
		return &AuthenticationError{Err: ErrMissingCredentials}
	}

	if err := page.Navigate(ctx, s.authURL); err != nil {
		return &AuthenticationError{Err: err, Details: "erro ao abrir a URL de autenticação"}
	}
	if err := s.sleep(ctx, s.timings.AuthSettle); err != nil {
		return &AuthenticationError{Err: err}
	}

	currentURL, err := page.CurrentURL(ctx)
	if err != nil {
		return &AuthenticationError{Err: err, Details: "erro ao ler a URL atual"}
	}

	if !s.isAnalyticsURL(currentURL) {
		return &AuthenticationError{CurrentURL: currentURL, Details: "não redirecionado para o painel"}
	}
	if isLoginURL(currentURL) {
		return &AuthenticationError{CurrentURL: currentURL, Details: "redirecionado para o login"}
	}

	return nil
}

func (s *Service) openListing(ctx context.Context, page Page) error {
	if err := page.Navigate(ctx, s.reportsURL); err != nil {
		return &NavigationError{URL: s.reportsURL, Err: err}
	}
	if err := s.sleep(ctx, s.timings.ListingSettle); err != nil {
		return &NavigationError{URL: s.reportsURL, Err: err}
	}

	logrus.WithField("url", s.reportsURL).Info("Listagem de relatórios carregada")
	return nil
}

func (s *Service) collectReport(ctx context.Context, page Page, target domain.ReportTarget) (outcome domain.ReportOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = failure(target, domain.FailureExtraction, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := page.Navigate(ctx, target.URL); err != nil {
		return failureFromContext(ctx, target, domain.FailureNavigation, err)
	}
	if err := s.sleep(ctx, s.timings.ReportSettle); err != nil {
		return failure(target, domain.FailureCanceled, err)
	}

	if currentURL, err := page.CurrentURL(ctx); err == nil && isLoginURL(currentURL) {
		return failure(target, domain.FailureSessionExpired, fmt.Errorf("%w: %s", ErrSessionExpired, currentURL))
	}

	if !s.setPeriodYesterday(ctx, page) {
		logrus.WithField("report", target.Name).Warn("Período não alterado, usando o período exibido")
	}
	if err := s.sleep(ctx, s.timings.PeriodSettle); err != nil {
		return failure(target, domain.FailureCanceled, err)
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return failureFromContext(ctx, target, domain.FailureExtraction, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return failure(target, domain.FailureExtraction, err)
	}

	indicators := ExtractIndicators(target.Family, doc)
	if len(indicators) == 0 {
		logrus.WithFields(logrus.Fields{
			"report": target.Name,
			"family": target.Family,
		}).Warn("Nenhum indicador encontrado no relatório")
	}

	return domain.ReportOutcome{
		Target: target,
		Result: &domain.ReportResult{
			CollectedOn: s.now().Format(time.DateOnly),
			ReportName:  target.Name,
			Period:      s.period.Extract(doc),
			Indicators:  indicators,
		},
	}
}

// setPeriodYesterday tenta selecionar "Ontem" no seletor de período.
// Retorna false quando o controle ou a opção não existem.
func (s *Service) setPeriodYesterday(ctx context.Context, page Page) bool {
	wait := s.timings.PeriodStepWait

	opened, err := page.Click(ctx, periodControlSelector, wait)
	if err != nil || !opened {
		logrus.WithField("error", errorString(err)).Warn("Seletor de período não encontrado")
		return false
	}
	if err := s.sleep(ctx, s.timings.PeriodStepDelay); err != nil {
		return false
	}

	// O modal do painel novo abre as opções em um dropdown
	if ok, _ := page.Click(ctx, periodDropdownSelector, wait); ok {
		if err := s.sleep(ctx, s.timings.PeriodStepDelay); err != nil {
			return false
		}
	}

	selected, err := page.ClickText(ctx, periodOptionSelector, periodOptionPattern, wait)
	if err == nil && !selected {
		selected, err = page.Click(ctx, periodValueSelector, wait)
	}
	if err != nil || !selected {
		logrus.WithField("error", errorString(err)).Warn("Opção \"Ontem\" não encontrada")
		return false
	}
	if err := s.sleep(ctx, 2*s.timings.PeriodStepDelay); err != nil {
		return false
	}

	if ok, _ := page.ClickText(ctx, periodConfirmSelector, periodConfirmPattern, wait); ok {
		logrus.Debug("Período confirmado")
	}

	logrus.Info("Período configurado para ontem")
	return true
}

func (s *Service) isAnalyticsURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || s.analyticsHost == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	expected := strings.ToLower(s.analyticsHost)
	return host == expected || strings.HasSuffix(host, "."+expected)
}

func isLoginURL(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "/login")
}

func failure(target domain.ReportTarget, reason domain.FailureReason, err error) domain.ReportOutcome {
	return domain.ReportOutcome{Target: target, Reason: reason, Err: err}
}

func failureFromContext(ctx context.Context, target domain.ReportTarget, reason domain.FailureReason, err error) domain.ReportOutcome {
	if ctx.Err() != nil {
		reason = domain.FailureCanceled
	}
	return failure(target, reason, err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
