package domain

import "github.com/golang-jwt/jwt/v5"

// ScopeCollect permite executar e consultar a coleta
const ScopeCollect = "collect"

// Claims são os dados do token de acesso aos endpoints da coleta
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}
