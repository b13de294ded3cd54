package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"communityconnect/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError translates a domain error into an HTTP status and a JSON
// body. Every error is recovered here; nothing is fatal and nothing is
// retried.
func respondError(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, err error) {
	status, code := errorStatus(err)

	if status == http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")

		respondJSON(w, status, errorResponse{Error: code, Message: "something went wrong"})
		return
	}

	respondJSON(w, status, errorResponse{Error: code, Message: err.Error()})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, types.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, types.ErrForbiddenRole):
		return http.StatusForbidden, "forbidden_role"
	case errors.Is(err, types.ErrForbiddenOwnership):
		return http.StatusForbidden, "forbidden_ownership"
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, types.ErrDuplicateEmail):
		return http.StatusConflict, "duplicate_email"
	case errors.Is(err, types.ErrRetractionNotAllowed):
		return http.StatusConflict, "retraction_not_allowed"
	case errors.Is(err, types.ErrDuplicateSignup):
		return http.StatusConflict, "duplicate_signup"
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	}

	return http.StatusInternalServerError, "internal"
}

// decodeForm parses the request body into dst and validates it. Decode
// and validation failures both come back as ErrInvalidInput so the
// boundary reports them as bad requests.
func decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", types.ErrInvalidInput)
	}

	if err := decoder.Decode(dst, r.PostForm); err != nil {
		return fmt.Errorf("decode form: %w", types.ErrInvalidInput)
	}

	if err := validate.Struct(dst); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return fmt.Errorf("field %s is invalid: %w", invalid[0].Field(), types.ErrInvalidInput)
		}
		return fmt.Errorf("validate form: %w", types.ErrInvalidInput)
	}

	return nil
}
