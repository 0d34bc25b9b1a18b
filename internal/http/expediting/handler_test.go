package expediting_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/poflow/internal/expediting"
	expeditinghttp "github.com/MrJamesThe3rd/poflow/internal/http/expediting"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

func newServer(t *testing.T) (*expediting.MockRepository, http.Handler) {
	t.Helper()

	repo := expediting.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	expeditinghttp.NewHandler(expediting.NewService(repo), logger.Nop()).Routes(r)

	return repo, r
}

func TestHandler_List(t *testing.T) {
	repo, srv := newServer(t)

	issued := purchaseorder.StatusIssued
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	want := expediting.Query{
		SupplierName: "acme",
		Status:       &issued,
		UpdatedFrom:  &from,
		Sort:         expediting.SortUpdatedAt,
		Ascending:    true,
		Page:         2,
	}

	repo.EXPECT().CountActive(gomock.Any(), want).Return(60, nil)
	repo.EXPECT().ListActive(gomock.Any(), want, expediting.PageSize, expediting.PageSize).
		Return([]expediting.Row{{POID: uuid.New(), PONumber: 51}}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/?supplier=acme&status=issued&updated_from=2026-01-01&sort=updated_at&order=asc&page=2", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Page       int `json:"page"`
			TotalPages int `json:"total_pages"`
			StartIndex int `json:"start_index"`
			EndIndex   int `json:"end_index"`
		} `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Page)
	assert.Equal(t, 2, body.Data.TotalPages)
	assert.Equal(t, 51, body.Data.StartIndex)
	assert.Equal(t, 60, body.Data.EndIndex)
}

func TestHandler_List_BadDate(t *testing.T) {
	_, srv := newServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?updated_to=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_PatchLineItem(t *testing.T) {
	id := uuid.New()
	expected := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		setup      func(m *expediting.MockRepository)
		wantStatus int
	}{
		{
			name: "SetsDateAndClearsOther",
			body: `{"exped_expected_date":"2026-05-01","exped_completed_date":null}`,
			setup: func(m *expediting.MockRepository) {
				m.EXPECT().PatchLineItem(gomock.Any(), id, expediting.LineItemPatch{
					ExpectedDate:  expediting.DatePatch{Set: true, Value: &expected},
					CompletedDate: expediting.DatePatch{Set: true},
				}).Return(&expediting.LineItem{ID: id, Quantity: decimal.NewFromInt(4), ExpectedDate: &expected}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Empty",
			body:       `{}`,
			setup:      func(*expediting.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NegativeQty",
			body:       `{"qty_received":"-1"}`,
			setup:      func(*expediting.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadDate",
			body:       `{"exped_expected_date":"01/05/2026"}`,
			setup:      func(*expediting.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Missing",
			body: `{"qty_received":2}`,
			setup: func(m *expediting.MockRepository) {
				m.EXPECT().PatchLineItem(gomock.Any(), id, gomock.Any()).Return(nil, expediting.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, srv := newServer(t)
			tt.setup(repo)

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/line-items/"+id.String(), strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
