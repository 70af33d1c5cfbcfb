package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/joblane/jobboard/internal/errors"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteAppError_StatusTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "validation maps to 400",
			err:      apperrors.Validation("title must not be empty"),
			wantCode: http.StatusBadRequest,
			wantErr:  "validation_failed",
		},
		{
			name:     "not found maps to 404",
			err:      apperrors.NotFoundf("job with id %s not found", "abc"),
			wantCode: http.StatusNotFound,
			wantErr:  "not_found",
		},
		{
			name:     "unavailable maps to 503",
			err:      apperrors.Unavailable("database timeout"),
			wantCode: http.StatusServiceUnavailable,
			wantErr:  "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decodeErrorBody(t, rec)["error"])
		})
	}
}

func TestWriteAppError_RedactsUnclassifiedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAppError(rec, errors.New("dial tcp 10.0.0.5:5432: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "internal", body["error"])
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
