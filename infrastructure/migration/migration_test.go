package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/database/postgres/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestMigrate_CreateTableError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mocks.NewMockConn(ctrl)
	conn.EXPECT().
		Exec(gomock.Any(), createReportsTableSQL).
		Return(nil, errors.New("permission denied for schema public"))

	err := Migrate(context.Background(), conn)
	assert.ErrorContains(t, err, "erro ao criar tabela mlabs_reports")
	assert.ErrorContains(t, err, "permission denied")
}
