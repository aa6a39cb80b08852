package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/sirupsen/logrus"
)

// CookieStore guarda os cookies da sessão do mLabs entre execuções
type CookieStore interface {
	Load(ctx context.Context) ([]domain.Cookie, error)
	Save(ctx context.Context, cookies []domain.Cookie) error
}

// SecretCookieStore lê os cookies da variável COOKIE_STORE e, quando o Render
// está configurado, do secret file da aplicação, onde também os salva.
type SecretCookieStore struct {
	initial    string
	serviceID  string
	secretName string
	storage    SecretStorage
}

func NewSecretCookieStore(cfg *Config, storage SecretStorage) *SecretCookieStore {
	return &SecretCookieStore{
		initial:    cfg.CookieStore,
		serviceID:  cfg.Render.ServiceID,
		secretName: cfg.Collect.CookieSecretName,
		storage:    storage,
	}
}

func (s *SecretCookieStore) Load(ctx context.Context) ([]domain.Cookie, error) {
	raw := s.initial

	if s.remoteEnabled() {
		secrets, err := s.storage.ListSecrets(ctx, s.serviceID)
		if err != nil {
			logrus.WithError(err).Warn("cookies: erro ao listar secrets do Render, usando COOKIE_STORE")
		} else if content, ok := secrets[s.secretName]; ok && content != "" {
			raw = content
		}
	}

	return ParseCookies(raw)
}

func (s *SecretCookieStore) Save(ctx context.Context, cookies []domain.Cookie) error {
	if len(cookies) == 0 {
		return nil
	}

	content, err := json.Marshal(cookies)
	if err != nil {
		return fmt.Errorf("cookies: erro ao serializar: %w", err)
	}
	s.initial = string(content)

	if !s.remoteEnabled() {
		return nil
	}

	if err := s.storage.AddOrUpdateSecret(ctx, s.serviceID, s.secretName, string(content)); err != nil {
		return fmt.Errorf("cookies: erro ao salvar secret %s: %w", s.secretName, err)
	}

	logrus.WithFields(logrus.Fields{
		"secret":  s.secretName,
		"cookies": len(cookies),
	}).Info("cookies: sessão salva no Render")

	return nil
}

func (s *SecretCookieStore) remoteEnabled() bool {
	return s.storage != nil && s.serviceID != "" && s.secretName != ""
}

// ParseCookies interpreta o JSON de cookies; conteúdo vazio resulta em nenhum cookie
func ParseCookies(raw string) ([]domain.Cookie, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var cookies []domain.Cookie
	if err := json.Unmarshal([]byte(raw), &cookies); err != nil {
		return nil, fmt.Errorf("cookies: JSON inválido: %w", err)
	}

	return cookies, nil
}
