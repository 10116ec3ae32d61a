package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not permitted", domain.ErrActionNotPermitted, http.StatusForbidden, "ACTION_NOT_PERMITTED"},
		{"invalid transition", fmt.Errorf("%w: Draft to Validated", domain.ErrInvalidTransition), http.StatusConflict, "INVALID_TRANSITION"},
		{"check in progress", domain.ErrCheckInProgress, http.StatusConflict, "CHECK_IN_PROGRESS"},
		{"confirmation", domain.ErrConfirmationRequired, http.StatusBadRequest, "CONFIRMATION_REQUIRED"},
		{"session expired", domain.ErrSessionExpired, http.StatusUnauthorized, "SESSION_EXPIRED"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown status", domain.ErrUnknownClearanceStatus, http.StatusBadGateway, "UNKNOWN_STATUS"},
		{"unknown remote status", fmt.Errorf("invoice 7: %w: code 9", domain.ErrUnknownRemoteStatus), http.StatusBadGateway, "UNKNOWN_STATUS"},
		{"clearance failed over remote", fmt.Errorf("%w: %w", domain.ErrClearanceCheckFailed, domain.ErrRemoteUnavailable), http.StatusBadGateway, "CLEARANCE_CHECK_FAILED"},
		{"remote", domain.ErrRemoteUnavailable, http.StatusBadGateway, "REMOTE_UNAVAILABLE"},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest, "INVALID_REQUEST"},
		{"invalid operation", domain.ErrInvalidOperation, http.StatusBadRequest, "INVALID_REQUEST"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	h := handler.NewHealthHandler(nil)

	c, w := newTestContext(http.MethodGet, "/healthz", nil, nil, "")
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodGet, "/readyz", nil, nil, "")
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

type failingPinger struct{}

func (failingPinger) PingContext(_ context.Context) error { return errors.New("down") }

func TestHealthHandler_ReadinessDBDown(t *testing.T) {
	h := handler.NewHealthHandler(failingPinger{})

	c, w := newTestContext(http.MethodGet, "/readyz", nil, nil, "")
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
