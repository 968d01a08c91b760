package triage

import "errors"

// Sentinel errors for the triage service layer.
var (
	ErrNotFound      = errors.New("triage: email not found")
	ErrInvalidStatus = errors.New("triage: invalid status")
)
