package migration

import (
	"context"
	"fmt"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/database/postgres"
	"github.com/sirupsen/logrus"
)

const (
	reportsTable          = "mlabs_reports"
	reportsUniqueKey      = "mlabs_reports_report_name_period_start_key"
	createReportsTableSQL = `
		CREATE TABLE IF NOT EXISTS mlabs_reports (
			id UUID PRIMARY KEY,
			report_name TEXT NOT NULL,
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			collected_on DATE NOT NULL,
			indicators JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	constraintExistsSQL = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_name = $1
			AND constraint_type = 'UNIQUE'
			AND constraint_name = $2
		)
	`
	createCollectedOnIndexSQL = `CREATE INDEX IF NOT EXISTS mlabs_reports_collected_on_idx ON mlabs_reports (collected_on)`
)

// Migrate cria a tabela mlabs_reports e a constraint usada pelo upsert.
// Pode ser executado mais de uma vez.
func Migrate(ctx context.Context, conn postgres.Queryer) error {
	logrus.Info("Criando tabela mlabs_reports...")

	if _, err := conn.Exec(ctx, createReportsTableSQL); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", reportsTable, err)
	}

	if err := addUniqueConstraint(ctx, conn); err != nil {
		return err
	}

	if _, err := conn.Exec(ctx, createCollectedOnIndexSQL); err != nil {
		return fmt.Errorf("erro ao criar índice de collected_on: %w", err)
	}

	logrus.Info("Tabela mlabs_reports pronta")
	return nil
}

func addUniqueConstraint(ctx context.Context, conn postgres.Queryer) error {
	// Verificar se a constraint já existe
	var constraintExists bool
	err := conn.QueryRow(ctx, constraintExistsSQL, reportsTable, reportsUniqueKey).Scan(&constraintExists)
	if err != nil {
		return fmt.Errorf("erro ao verificar constraint existente: %w", err)
	}

	if constraintExists {
		logrus.Debug("Constraint UNIQUE já existe na tabela mlabs_reports")
		return nil
	}

	_, err = conn.Exec(ctx, fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (report_name, period_start)",
		reportsTable, reportsUniqueKey,
	))
	if err != nil {
		return fmt.Errorf("erro ao adicionar constraint UNIQUE: %w", err)
	}

	logrus.Info("Constraint UNIQUE (report_name, period_start) adicionada na tabela mlabs_reports")
	return nil
}
