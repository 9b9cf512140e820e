package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", New(ErrValidation, "question and tag are required"), http.StatusBadRequest, "VALIDATION_ERROR", "question and tag are required"},
		{"conflict", Newf(ErrConflict, "post is already %s", "approved"), http.StatusBadRequest, "CONFLICT", "post is already approved"},
		{"unauthenticated", New(ErrUnauthenticated, "invalid email or password"), http.StatusUnauthorized, "UNAUTHENTICATED", "invalid email or password"},
		{"forbidden", New(ErrForbidden, "admin access required"), http.StatusForbidden, "FORBIDDEN", "admin access required"},
		{"not found", New(ErrNotFound, "post not found"), http.StatusNotFound, "NOT_FOUND", "post not found"},
		{"wrapped", fmt.Errorf("load: %w", New(ErrNotFound, "post not found")), http.StatusNotFound, "NOT_FOUND", "load: post not found"},
		{"unexpected", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, ErrorResponse{Error: tt.message, Code: tt.code}, httpErr.ToErrorResponse())
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrForbidden, "nope")
	assert.True(t, Is(err, ErrForbidden))
	assert.False(t, Is(err, ErrNotFound))
}
