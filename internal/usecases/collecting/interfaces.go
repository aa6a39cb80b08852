package collecting

import (
	"context"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
)

// Page é a página do navegador controlada pela coleta. Uma única Page é usada
// por execução, sempre de forma sequencial.
type Page interface {
	// Navigate abre a URL e aguarda a rede ficar ociosa
	Navigate(ctx context.Context, url string) error
	// WaitForSelector retorna false quando o seletor não aparece dentro do timeout
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) (bool, error)
	// Click clica no primeiro elemento do seletor; false quando não encontrado
	Click(ctx context.Context, selector string, timeout time.Duration) (bool, error)
	// ClickText clica no primeiro elemento do seletor cujo texto casa com o padrão
	ClickText(ctx context.Context, selector, pattern string, timeout time.Duration) (bool, error)
	// HTML retorna o snapshot do DOM renderizado
	HTML(ctx context.Context) (string, error)
	CurrentURL(ctx context.Context) (string, error)
	Cookies(ctx context.Context) ([]domain.Cookie, error)
	SetCookies(ctx context.Context, cookies []domain.Cookie) error
}

// Session é a Page de um navegador aberto, fechado ao final da execução
type Session interface {
	Page
	Close() error
}

// SessionFactory abre um navegador novo para cada execução
type SessionFactory interface {
	NewSession(ctx context.Context) (Session, error)
}

// Collector coleta os relatórios do mLabs usando uma Page já inicializada
type Collector interface {
	CollectAll(ctx context.Context, page Page) ([]domain.ReportResult, error)
	Collect(ctx context.Context, page Page, onResult ResultHandler) ([]domain.ReportOutcome, error)
}

// ResultHandler recebe cada ReportResult assim que ele é montado
type ResultHandler func(ctx context.Context, result domain.ReportResult)
