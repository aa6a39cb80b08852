package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 8)
	assert.Regexp(t, `^[A-Za-z0-9]+$`, id)
}

func TestPrettyJson(t *testing.T) {
	out, err := PrettyJson(map[string]int{"reportsFound": 4})
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"reportsFound\": 4\n}", out)

	out, err = PrettyJson([]byte(`{"runId":"aB3xY9"}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"runId\": \"aB3xY9\"\n}", out)

	_, err = PrettyJson([]byte(`{`))
	assert.Error(t, err)
}
