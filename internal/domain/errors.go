package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrSessionExpired         = errors.New("session expired")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrActionNotPermitted     = errors.New("action not permitted for current role and status")
	ErrInvalidTransition      = errors.New("status transition not allowed")
	ErrCheckInProgress        = errors.New("clearance check already in progress")
	ErrClearanceCheckFailed   = errors.New("error checking clearance status")
	ErrUnknownClearanceStatus = errors.New("unknown clearance status")
	ErrUnknownRemoteStatus    = errors.New("remote billing API reported an unknown document status")
	ErrRemoteUnavailable      = errors.New("remote billing API unavailable")
	ErrInvalidOperation       = errors.New("invalid bulk operation")
	ErrConfirmationRequired   = errors.New("bulk operation requires confirmation")
)
