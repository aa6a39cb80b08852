package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/MarcioBJunior/mlabs-collector/pkg/apiErrors"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "mlabs-collector"

// Authenticator valida os tokens que liberam os endpoints da coleta. Sem
// SECRET_KEY configurada a autenticação fica desabilitada.
type Authenticator interface {
	Enabled() bool
	GenerateToken(subject string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
	now func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}

func (s *Service) Enabled() bool {
	return s.cfg.SecretKey != ""
}

// GenerateToken gera um token com escopo de coleta. ttl zero gera um token sem expiração.
func (s *Service) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "Não é possível gerar tokens")
	}
	if subject == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Subject é obrigatório")
	}

	now := s.now()
	claims := domain.Claims{
		Scope: domain.ScopeCollect,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if claims.Scope != domain.ScopeCollect {
		return nil, NewAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, "Escopo do token não permite a coleta")
	}

	return claims, nil
}
