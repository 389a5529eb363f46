package apierror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestAPIErrorError(t *testing.T) {
	err := NewAPIError(ErrNotFound, "invoice not found", nil)
	assert.Equal(t, "NOT_FOUND: invoice not found", err.Error())
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrUpstream, http.StatusBadGateway},
		{ErrInternalServer, http.StatusInternalServerError},
		{ErrBadRequest, http.StatusInternalServerError}, // unmapped code falls through
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, MapErrorToHTTPStatus(NewAPIError(tt.code, "m", nil)))
	}

	assert.Equal(t, http.StatusInternalServerError, MapErrorToHTTPStatus(errors.New("plain error")))
}
