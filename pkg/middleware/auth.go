package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/authenticating"
	"github.com/MarcioBJunior/mlabs-collector/pkg/apiErrors"
	"github.com/MarcioBJunior/mlabs-collector/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// AuthMiddleware exige um Bearer token válido quando a SECRET_KEY está configurada
func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() || publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Header Authorization é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token é obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				code := apiErrors.ErrInvalidToken
				var authErr *authenticating.AuthError
				if errors.As(err, &authErr) && authErr.Code != "" {
					code = authErr.Code
				}

				log.ForContext(r.Context()).WithError(err).Warn("auth: token rejeitado")
				apiErrors.WriteError(w, code, authErrorMessage(err), nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retorna as claims do token validado pelo AuthMiddleware
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, authenticating.ErrExpiredToken):
		return "Token expirado"
	case errors.Is(err, authenticating.ErrInsufficientPrivilege):
		return "Token sem permissão para a coleta"
	default:
		return "Token inválido"
	}
}
