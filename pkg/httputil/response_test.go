package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSON(w, http.StatusOK, map[string]string{"token": "abc"})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"token":"abc"}`, w.Body.String())
}

func TestWriteSuccess_String(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteSuccess(w, "Task deleted")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"Task deleted"`, w.Body.String())
}

func TestErrorWriters(t *testing.T) {
	tests := []struct {
		name    string
		write   func(w http.ResponseWriter)
		status  int
		message string
	}{
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "task is required") }, http.StatusBadRequest, "task is required"},
		{"unauthorized", func(w http.ResponseWriter) { WriteUnauthorized(w, "unauthenticated") }, http.StatusUnauthorized, "unauthenticated"},
		{"not found", func(w http.ResponseWriter) { WriteNotFoundError(w, "task not found") }, http.StatusNotFound, "task not found"},
		{"conflict", func(w http.ResponseWriter) { WriteConflict(w, "username already exists") }, http.StatusConflict, "username already exists"},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w) }, http.StatusInternalServerError, InternalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.message, decodeError(t, w))
		})
	}
}
