package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const pingRetries = 5

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
}

type Connection struct {
	*sql.DB
}

var _ Conn = (*Connection)(nil)

// NewConnection abre a conexão e tenta o ping algumas vezes, já que o banco
// gerenciado pode demorar a aceitar conexões após um cold start
func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond

	attempt := 0
	err = backoff.Retry(
		func() error {
			attempt++
			if err := db.PingContext(ctx); err != nil {
				logrus.WithFields(logrus.Fields{
					"attempt": attempt,
					"error":   err.Error(),
				}).Warn("Banco de dados indisponível, tentando novamente")
				return err
			}
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(policy, pingRetries),
			ctx,
		),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DB.ExecContext(ctx, query, args...)
}

func (c *Connection) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

func (c *Connection) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.DB.QueryRowContext(ctx, query, args...)
}
