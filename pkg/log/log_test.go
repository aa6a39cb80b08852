package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))

	ctx, id := WithCorrelationID(context.Background())
	require.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{env: "", want: true},
		{env: "development", want: true},
		{env: "dev", want: true},
		{env: "production", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			assert.Equal(t, tt.want, IsDevelopment())
		})
	}
}

func TestWithFields_DevelopmentFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	base := &logger{entry: L.(*logger).entry}

	filtered := base.WithFields(Fields{"user_agent": "curl", "report": "D1 - Facebook"}).(*logger)
	assert.Contains(t, filtered.entry.Data, "report")
	assert.NotContains(t, filtered.entry.Data, "user_agent")

	same := base.WithField("remote_addr", "127.0.0.1")
	assert.Same(t, base, same)
}

func TestWithFields_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	l := L.WithFields(Fields{"user_agent": "curl"}).(*logger)
	assert.Equal(t, "curl", l.entry.Data["user_agent"])
}
