package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_TypedErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", &ValidationError{Message: "chat_id is required"}, http.StatusBadRequest, "chat_id is required"},
		{"validation default", &ValidationError{}, http.StatusBadRequest, "Validation error"},
		{"not found", &NotFoundError{Message: "User not found"}, http.StatusNotFound, "User not found"},
		{"wrapped not found", fmt.Errorf("resolve: %w", &NotFoundError{Message: "Chat not found"}), http.StatusNotFound, "Chat not found"},
		{"unauthorized", &UnauthorizedError{Message: "Invalid token"}, http.StatusUnauthorized, "Invalid token"},
		{"forbidden", &ForbiddenError{Message: "Access denied"}, http.StatusForbidden, "Access denied"},
		{"rate limited", &RateLimitError{Message: "Too many requests"}, http.StatusTooManyRequests, "Too many requests"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Write(rr, httptest.NewRequest(http.MethodPost, "/chat", nil), tc.err)

			require.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, map[string]string{"error": tc.message}, body)
		})
	}
}

func TestWrite_UntypedErrorIsOpaque(t *testing.T) {
	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodPost, "/chat", nil), errors.New("dial tcp: password=hunter2"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "hunter2")
	assert.NotContains(t, rr.Header().Get("Content-Type"), "application/json")
}
