package respond_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/poflow/internal/formtoken"
	"github.com/MrJamesThe3rd/poflow/internal/http/respond"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"NotFound", purchaseorder.ErrNotFound, http.StatusNotFound, "not_found"},
		{"Locked", fmt.Errorf("saving: %w", purchaseorder.ErrLocked), http.StatusConflict, "locked"},
		{"Conflict", purchaseorder.ErrConflict, http.StatusConflict, "conflict"},
		{"Exhausted", purchaseorder.ErrRevisionExhausted, http.StatusConflict, "revision_exhausted"},
		{"IllegalTransition", purchaseorder.ErrIllegalTransition, http.StatusUnprocessableEntity, "illegal_transition"},
		{"InvalidStatus", purchaseorder.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
		{"TokenConsumed", formtoken.ErrTokenConsumed, http.StatusConflict, "form_already_submitted"},
		{"Typed", respond.Unauthorized("nope", nil), http.StatusUnauthorized, "unauthorized"},
		{"Unknown", errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.WriteError(context.Background(), logger.Nop(), rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantCode, decode(t, rec).Error.Code)
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.WriteError(context.Background(), logger.Nop(), rec, errors.New("password=hunter2"))

	assert.Equal(t, "internal error", decode(t, rec).Error.Message)
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.OK(rec, map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, string(decode(t, rec).Data))
}

type saveBody struct {
	Status string `json:"status" validate:"required,oneof=draft approved"`
	Notes  string `json:"notes" validate:"max=5"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		wantDetails []string
	}{
		{name: "Valid", body: `{"status":"draft"}`},
		{name: "UnknownField", body: `{"status":"draft","extra":1}`, wantErr: true},
		{name: "Malformed", body: `{"status":`, wantErr: true},
		{name: "MissingRequired", body: `{}`, wantErr: true, wantDetails: []string{"status"}},
		{name: "TooLong", body: `{"status":"draft","notes":"abcdefgh"}`, wantErr: true, wantDetails: []string{"notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dest saveBody

			err := respond.Decode(req, &dest)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)

			var typed *respond.Error
			require.ErrorAs(t, err, &typed)
			assert.Equal(t, http.StatusBadRequest, typed.Status)

			if len(tt.wantDetails) > 0 {
				details, ok := typed.Details.(map[string]string)
				require.True(t, ok)

				for _, field := range tt.wantDetails {
					assert.Contains(t, details, field)
				}
			}
		})
	}
}
