package collecting

import (
	"errors"
	"fmt"
)

var (
	// Erros fatais: interrompem a execução inteira
	ErrAuthentication     = errors.New("falha na autenticação no mLabs")
	ErrMissingCredentials = errors.New("URL de autenticação do mLabs não configurada")
	ErrNavigation         = errors.New("falha ao acessar a listagem de relatórios")

	// Erros por relatório: registrados no ReportOutcome
	ErrSessionExpired = errors.New("sessão expirada, redirecionado para o login")
)

// AuthenticationError indica que a sessão não chegou ao painel do analytics
type AuthenticationError struct {
	Err        error
	CurrentURL string
	Details    string
}

func (e *AuthenticationError) Error() string {
	msg := ErrAuthentication.Error()
	if e.Err != nil && !errors.Is(e.Err, ErrAuthentication) {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.CurrentURL != "" {
		msg = fmt.Sprintf("%s [url: %s]", msg, e.CurrentURL)
	}
	return msg
}

func (e *AuthenticationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAuthentication}
	}
	return []error{ErrAuthentication, e.Err}
}

// NavigationError indica que a listagem de relatórios não pôde ser carregada
type NavigationError struct {
	Err error
	URL string
}

func (e *NavigationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrNavigation.Error(), e.URL)
	}
	return fmt.Sprintf("%s: %s: %s", ErrNavigation.Error(), e.URL, e.Err.Error())
}

func (e *NavigationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNavigation}
	}
	return []error{ErrNavigation, e.Err}
}

// IsFatal verifica se o erro interrompe a coleta inteira
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuthentication) || errors.Is(err, ErrNavigation)
}
