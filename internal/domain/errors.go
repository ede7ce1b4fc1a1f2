package domain

import "errors"

// Sentinel errors shared across adapters and services. The HTTP boundary
// maps these to soft JSON errors; none of them is fatal to a request.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoFeedbackData  = errors.New("no feedback data available")
	ErrBlobNotFound    = errors.New("blob not found")
	ErrBlobExists      = errors.New("blob already exists")
)
