package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{code: ErrInvalidToken, status: http.StatusUnauthorized},
		{code: ErrCollectAuthentication, status: http.StatusBadGateway},
		{code: ErrCollectRunning, status: http.StatusConflict},
		{code: ErrCollectTimeout, status: http.StatusGatewayTimeout},
		{code: "XYZ_999", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "mensagem", map[string]any{"executionTime": "1.00s"})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"code":"`+tt.code+`","message":"mensagem","details":{"executionTime":"1.00s"}}`, rec.Body.String())
		})
	}
}
