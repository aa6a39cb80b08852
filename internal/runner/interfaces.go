package runner

import (
	"context"

	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
)

// Runner dispara e acompanha as execuções da coleta
type Runner interface {
	RunSync(ctx context.Context) (*domain.CollectSummary, error)
	TriggerManualSync() bool
	GetStatus() map[string]any
}

var _ Runner = (*CollectSyncService)(nil)
