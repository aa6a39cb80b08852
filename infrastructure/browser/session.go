package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/collecting"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

const stableWindow = time.Second

// Launcher abre sessões do Chrome via go-rod. Com ControlURL definida conecta
// em um navegador remoto (browserless) em vez de iniciar um local.
type Launcher struct {
	cfg config.Browser
}

var _ collecting.SessionFactory = (*Launcher)(nil)

func NewLauncher(cfg config.Browser) *Launcher {
	return &Launcher{cfg: cfg}
}

func (l *Launcher) NewSession(ctx context.Context) (collecting.Session, error) {
	session, err := NewSession(ctx, l.cfg)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Session é uma aba do navegador que implementa collecting.Page
type Session struct {
	launcher        *launcher.Launcher
	browser         *rod.Browser
	page            *rod.Page
	navigateTimeout time.Duration
}

var _ collecting.Session = (*Session)(nil)

func NewSession(ctx context.Context, cfg config.Browser) (*Session, error) {
	s := &Session{navigateTimeout: cfg.NavigateWait}
	if s.navigateTimeout <= 0 {
		s.navigateTimeout = 30 * time.Second
	}

	controlURL := cfg.ControlURL
	if controlURL == "" {
		s.launcher = launcher.New().
			Context(ctx).
			Headless(cfg.Headless).
			Set("no-sandbox").
			Set("disable-gpu").
			Set("disable-dev-shm-usage")

		u, err := s.launcher.Launch()
		if err != nil {
			return nil, fmt.Errorf("erro ao iniciar o navegador: %w", err)
		}
		controlURL = u
	}

	s.browser = rod.New().Context(ctx).ControlURL(controlURL)
	if err := s.browser.Connect(); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("erro ao conectar no navegador: %w", err)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("erro ao abrir página: %w", err)
	}
	s.page = page

	if cfg.ViewportWidth > 0 && cfg.ViewportHeight > 0 {
		err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             cfg.ViewportWidth,
			Height:            cfg.ViewportHeight,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			logrus.WithError(err).Warn("Não foi possível definir o viewport")
		}
	}

	if cfg.UserAgent != "" {
		err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent})
		if err != nil {
			logrus.WithError(err).Warn("Não foi possível definir o user agent")
		}
	}

	logrus.WithFields(logrus.Fields{
		"remote":   cfg.ControlURL != "",
		"headless": cfg.Headless,
	}).Info("Navegador iniciado")

	return s, nil
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx).Timeout(s.navigateTimeout)
	defer p.CancelTimeout()

	if err := p.Navigate(url); err != nil {
		return err
	}
	if err := p.WaitLoad(); err != nil {
		return err
	}

	// O painel continua carregando dados depois do load
	if err := p.WaitStable(stableWindow); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	return nil
}

func (s *Session) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	p := s.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	_, err := p.Element(selector)
	return found(ctx, err)
}

func (s *Session) Click(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	p := s.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	el, err := p.Element(selector)
	if ok, err := found(ctx, err); !ok {
		return false, err
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) ClickText(ctx context.Context, selector, pattern string, timeout time.Duration) (bool, error) {
	p := s.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	el, err := p.ElementR(selector, pattern)
	if ok, err := found(ctx, err); !ok {
		return false, err
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (s *Session) Cookies(ctx context.Context) ([]domain.Cookie, error) {
	cookies, err := s.page.Context(ctx).Cookies([]string{})
	if err != nil {
		return nil, err
	}
	return toDomainCookies(cookies), nil
}

func (s *Session) SetCookies(ctx context.Context, cookies []domain.Cookie) error {
	if len(cookies) == 0 {
		return nil
	}
	return s.page.Context(ctx).SetCookies(toCookieParams(cookies))
}

func (s *Session) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	s.cleanup()
	return err
}

func (s *Session) cleanup() {
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
}

// found trata o timeout da espera como "elemento não encontrado". O
// cancelamento da execução continua sendo um erro.
func found(ctx context.Context, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	var notFound *rod.ElementNotFoundError
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &notFound) {
		return false, nil
	}
	return false, err
}

func toDomainCookies(cookies []*proto.NetworkCookie) []domain.Cookie {
	out := make([]domain.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c == nil {
			continue
		}
		out = append(out, domain.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  float64(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	return out
}

func toCookieParams(cookies []domain.Cookie) []*proto.NetworkCookieParam {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		param := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: proto.NetworkCookieSameSite(c.SameSite),
		}
		// Cookies de sessão não têm expiração
		if c.Expires > 0 {
			param.Expires = proto.TimeSinceEpoch(c.Expires)
		}
		params = append(params, param)
	}
	return params
}
