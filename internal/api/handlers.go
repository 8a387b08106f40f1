// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/avela/placepulse/internal/activity"
	"github.com/avela/placepulse/internal/models"
	"github.com/avela/placepulse/internal/profile"
	"github.com/avela/placepulse/internal/recommend"
	"github.com/avela/placepulse/internal/validation"
)

// maxRequestBody bounds request body size for JSON endpoints.
const maxRequestBody = 1 << 20 // 1MB

// Handler serves the profile and recommendation endpoints.
type Handler struct {
	engine  *recommend.Engine
	builder *profile.Builder
	logger  zerolog.Logger
}

// NewHandler creates the API handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(engine *recommend.Engine, builder *profile.Builder, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		builder: builder,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// GetProfile returns the stored profile for a user.
//
// GET /api/v1/users/{userID}/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	prof, err := h.builder.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "no profile for user "+userID)
			return
		}
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to load profile")
		return
	}

	respondSuccess(w, r, http.StatusOK, prof)
}

// buildProfileRequest is the payload for explicit profile builds.
type buildProfileRequest struct {
	Settings    models.UserSettings        `json:"settings"`
	History     []models.ActivityRecord    `json:"history"`
	Suggestions []models.SuggestionOutcome `json:"suggestions"`
}

// BuildProfile builds and stores a profile from posted settings and history.
//
// POST /api/v1/users/{userID}/profile
func (h *Handler) BuildProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req buildProfileRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	if req.Settings.UserID == "" {
		req.Settings.UserID = userID
	}
	if req.Settings.UserID != userID {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "settings user_id does not match path")
		return
	}

	if verr := validation.ValidateStruct(&req.Settings); verr != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, verr.Error())
		return
	}

	prof, err := h.builder.Build(r.Context(), req.Settings, req.History, req.Suggestions)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("profile build failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to build profile")
		return
	}

	h.engine.InvalidateUser(userID)
	respondSuccess(w, r, http.StatusOK, prof)
}

// DeleteProfile removes a user's stored profile.
//
// DELETE /api/v1/users/{userID}/profile
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.builder.Registry().Delete(r.Context(), userID); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to delete profile")
		return
	}

	h.engine.InvalidateUser(userID)
	respondSuccess(w, r, http.StatusOK, map[string]string{"user_id": userID, "status": "deleted"})
}

// rankRequest is the payload for ranking requests.
type rankRequest struct {
	// Places are the candidate places to rank.
	Places []models.Place `json:"places" validate:"required,min=1"`

	// Time is the moment to rank for. Zero means now.
	Time time.Time `json:"time"`

	// K is how many places to return. Zero means the configured default.
	K int `json:"k" validate:"min=0"`
}

// Rank ranks candidate places for a user.
//
// POST /api/v1/users/{userID}/rank
func (h *Handler) Rank(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req rankRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, verr.Error())
		return
	}

	now := req.Time
	if now.IsZero() {
		now = time.Now()
	}

	resp, err := h.engine.RankForUser(r.Context(), userID, req.Places, now, req.K)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) || errors.Is(err, activity.ErrUnknownUser) {
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "no profile for user "+userID)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("ranking failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to rank places")
		return
	}

	respondSuccess(w, r, http.StatusOK, resp)
}

// predictRequest is the payload for acceptance prediction.
type predictRequest struct {
	Suggestion models.Suggestion `json:"suggestion"`

	// Time is the moment to resolve the profile for. Zero means now.
	Time time.Time `json:"time"`
}

// predictResponse carries the acceptance probability.
type predictResponse struct {
	UserID      string  `json:"user_id"`
	Probability float64 `json:"probability"`
}

// PredictAcceptance estimates the probability that a user accepts a
// suggestion.
//
// POST /api/v1/users/{userID}/predict
func (h *Handler) PredictAcceptance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req predictRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	now := req.Time
	if now.IsZero() {
		now = time.Now()
	}

	probability, err := h.engine.PredictAcceptanceForUser(r.Context(), userID, req.Suggestion, now)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) || errors.Is(err, activity.ErrUnknownUser) {
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "no profile for user "+userID)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("acceptance prediction failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to predict acceptance")
		return
	}

	respondSuccess(w, r, http.StatusOK, predictResponse{
		UserID:      userID,
		Probability: probability,
	})
}

// ListProfiles returns the ids of users with a stored profile.
//
// GET /api/v1/profiles
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ids, err := h.builder.Registry().UserIDs(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to list profiles")
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"user_ids": ids,
		"count":    len(ids),
	})
}

// decodeBody decodes a bounded JSON request body.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
