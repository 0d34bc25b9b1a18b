package accounts_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/poflow/internal/accounts"
	accountshttp "github.com/MrJamesThe3rd/poflow/internal/http/accounts"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

func newServer(t *testing.T) (*accounts.MockRepository, http.Handler) {
	t.Helper()

	repo := accounts.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	accountshttp.NewHandler(accounts.NewService(repo), logger.Nop()).Routes(r)

	return repo, r
}

func TestHandler_List(t *testing.T) {
	repo, srv := newServer(t)

	pending := false
	repo.EXPECT().
		ListEntries(gomock.Any(), accounts.Filter{AccComplete: &pending, ProjectNumber: "2417"}).
		Return([]accounts.Entry{{POID: uuid.New(), PONumber: 7, Net: decimal.RequireFromString("99.50")}}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?acc_complete=false&project_number=2417", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			PONumber int64  `json:"po_number"`
			Net      string `json:"net"`
		} `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "99.5", body.Data[0].Net)
}

func TestHandler_Update(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		body       string
		setup      func(m *accounts.MockRepository)
		wantStatus int
	}{
		{
			name: "MarksComplete",
			body: `{"acc_complete":true,"invoice_reference":"INV-001"}`,
			setup: func(m *accounts.MockRepository) {
				m.EXPECT().UpdateAccounts(gomock.Any(), id, gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "Empty",
			body:       `{}`,
			setup:      func(*accounts.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Missing",
			body: `{"acc_complete":true}`,
			setup: func(m *accounts.MockRepository) {
				m.EXPECT().UpdateAccounts(gomock.Any(), id, gomock.Any()).Return(accounts.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, srv := newServer(t)
			tt.setup(repo)

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/"+id.String(), strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
