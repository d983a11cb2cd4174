package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"putr/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

const internalErrorJSON = `{"error":{"code":"internal_error","message":"Internal server error","details":{}}}` + "\n"

// writeJSON encodes before writing the header, so a payload that cannot be
// encoded becomes a 500 instead of a truncated 200.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("failed to encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, internalErrorJSON)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	writeJSON(w, r, status, errorResponse{Error: errorBody{
		Code:    code,
		Message: strings.TrimSpace(message),
		Details: details,
	}})
}

// respondError maps domain errors onto status codes and the shared error body.
// Anything unrecognised is a 500 and its message is not exposed.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		conflict   *domain.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		logger.Debug().Err(err).Msg("not found")
		writeError(w, r, http.StatusNotFound, "not_found", notFound.Error(), map[string]any{
			"resource": notFound.Resource,
			"id":       notFound.ID,
		})
	case errors.As(err, &validation):
		logger.Warn().Err(err).Msg("validation failed")
		details := map[string]any{"field": validation.Field, "value": validation.Value}
		if validation.Line > 0 {
			details["line"] = validation.Line
		}
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", validation.Error(), details)
	case errors.As(err, &conflict):
		logger.Warn().Err(err).Msg("conflict")
		writeError(w, r, http.StatusConflict, "conflict", conflict.Error(), map[string]any{
			"resource": conflict.Resource,
			"value":    conflict.Value,
		})
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return &domain.ValidationError{Field: "body", Value: "", Err: err}
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Value: raw, Err: errors.New("must be a positive integer")}
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ValidationError{Field: name, Value: raw, Err: err}
	}
	return v, nil
}

func pageParams(r *http.Request) (offset, limit int, err error) {
	if offset, err = queryInt(r, "offset", 0); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(r, "limit", 0); err != nil {
		return 0, 0, err
	}
	return offset, limit, nil
}
