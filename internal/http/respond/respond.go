// Package respond writes JSON envelopes and maps domain errors to HTTP
// statuses.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/poflow/internal/accounts"
	"github.com/MrJamesThe3rd/poflow/internal/directory"
	"github.com/MrJamesThe3rd/poflow/internal/expediting"
	"github.com/MrJamesThe3rd/poflow/internal/formtoken"
	"github.com/MrJamesThe3rd/poflow/internal/lineimport"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
	"github.com/MrJamesThe3rd/poflow/internal/report"
)

type successEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error is an error that already knows how it should be presented.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation", Message: msg, Err: err}
}

func Unauthorized(msg string, err error) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "unauthorized", Message: msg, Err: err}
}

type mapping struct {
	target error
	status int
	code   string
}

// mappings are checked in order; the first match wins. The error's own
// message is shown for every mapped error.
var mappings = []mapping{
	{purchaseorder.ErrNotFound, http.StatusNotFound, "not_found"},
	{directory.ErrNotFound, http.StatusNotFound, "not_found"},
	{accounts.ErrNotFound, http.StatusNotFound, "not_found"},
	{expediting.ErrNotFound, http.StatusNotFound, "not_found"},
	{purchaseorder.ErrLocked, http.StatusConflict, "locked"},
	{purchaseorder.ErrConflict, http.StatusConflict, "conflict"},
	{purchaseorder.ErrRevisionExhausted, http.StatusConflict, "revision_exhausted"},
	{formtoken.ErrTokenConsumed, http.StatusConflict, "form_already_submitted"},
	{purchaseorder.ErrIllegalTransition, http.StatusUnprocessableEntity, "illegal_transition"},
	{purchaseorder.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{purchaseorder.ErrInvalidRevision, http.StatusUnprocessableEntity, "invalid_revision"},
	{purchaseorder.ErrValidation, http.StatusBadRequest, "validation"},
	{accounts.ErrNoChanges, http.StatusBadRequest, "validation"},
	{expediting.ErrNoChanges, http.StatusBadRequest, "validation"},
	{expediting.ErrInvalid, http.StatusBadRequest, "validation"},
	{report.ErrInvalidRange, http.StatusBadRequest, "validation"},
	{lineimport.ErrNoHeader, http.StatusUnprocessableEntity, "unrecognised_file"},
	{formtoken.ErrTokenMissing, http.StatusBadRequest, "form_token_required"},
}

func classify(err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return &Error{Status: m.status, Code: m.code, Message: err.Error(), Err: err}
		}
	}

	return &Error{Status: http.StatusInternalServerError, Code: "internal", Message: "internal error", Err: err}
}

func JSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// WriteError logs err and writes it as an error envelope. Server errors
// are logged with any Postgres diagnostics and shown generically.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	e := classify(err)

	if logg != nil {
		fields := map[string]any{
			"error_code":  e.Code,
			"http_status": e.Status,
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			fields["pg_code"] = pgErr.Code
			fields["pg_message"] = pgErr.Message
			fields["pg_detail"] = pgErr.Detail
			fields["pg_table"] = pgErr.TableName
			fields["pg_constraint"] = pgErr.ConstraintName
		}

		ctx = logg.WithFields(ctx, fields)

		if e.Status >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.rejected", err)
		}
	}

	writeJSON(w, e.Status, errorEnvelope{Error: apiError{Code: e.Code, Message: e.Message, Details: e.Details}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
