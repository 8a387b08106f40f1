// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package api provides the HTTP API for profiles, ranking and acceptance
// prediction, with a standardized response envelope.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/avela/placepulse/internal/logging"
)

// APIResponse is the standardized response wrapper for all API endpoints.
type APIResponse struct {
	// Success indicates whether the request was successful.
	Success bool `json:"success"`

	// Data contains the response payload (null on error).
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (null on success).
	Error *APIError `json:"error,omitempty"`

	// Meta contains optional metadata about the response.
	Meta *APIMeta `json:"meta,omitempty"`
}

// APIError represents an error response.
type APIError struct {
	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// RequestID is the request ID for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// APIMeta contains optional response metadata.
type APIMeta struct {
	// RequestID is the unique request identifier for tracing.
	RequestID string `json:"request_id,omitempty"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// DurationMs is the request processing time in milliseconds.
	DurationMs int64 `json:"duration_ms,omitempty"`
}

// Error codes for API responses.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// respondSuccess writes a success envelope with the given payload.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeResponse(w, r, status, APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			RequestID: logging.RequestIDFromContext(r.Context()),
			Timestamp: time.Now(),
		},
	})
}

// respondError writes an error envelope with the given code and message.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeResponse(w, r, status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Meta: &APIMeta{
			Timestamp: time.Now(),
		},
	})
}

func writeResponse(w http.ResponseWriter, r *http.Request, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("write api response")
	}
}
