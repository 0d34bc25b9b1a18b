package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/poflow/internal/accounts"
	"github.com/MrJamesThe3rd/poflow/internal/directory"
	"github.com/MrJamesThe3rd/poflow/internal/document"
	"github.com/MrJamesThe3rd/poflow/internal/expediting"
	apphttp "github.com/MrJamesThe3rd/poflow/internal/http"
	accountshttp "github.com/MrJamesThe3rd/poflow/internal/http/accounts"
	dirhttp "github.com/MrJamesThe3rd/poflow/internal/http/directory"
	expeditinghttp "github.com/MrJamesThe3rd/poflow/internal/http/expediting"
	"github.com/MrJamesThe3rd/poflow/internal/http/middleware"
	pohttp "github.com/MrJamesThe3rd/poflow/internal/http/purchaseorder"
	reporthttp "github.com/MrJamesThe3rd/poflow/internal/http/report"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/metrics"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
	"github.com/MrJamesThe3rd/poflow/internal/report"
)

var secret = []byte("router-secret")

func newRouter(t *testing.T) (http.Handler, *directory.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := logger.Nop()

	dirRepo := directory.NewMockRepository(ctrl)
	dirSvc := directory.NewService(dirRepo)

	handlers := apphttp.Handlers{
		PurchaseOrders: pohttp.NewHandler(
			purchaseorder.NewService(purchaseorder.NewMockRepository(ctrl)),
			dirSvc,
			document.NewRenderer("Northwind Build Ltd"),
			log,
		),
		Accounts:   accountshttp.NewHandler(accounts.NewService(accounts.NewMockRepository(ctrl)), log),
		Expediting: expeditinghttp.NewHandler(expediting.NewService(expediting.NewMockRepository(ctrl)), log),
		Reports:    reporthttp.NewHandler(report.NewService(report.NewMockRepository(ctrl), "GBP"), log),
		Directory:  dirhttp.NewHandler(dirSvc, log),
	}

	return apphttp.New(apphttp.Options{
		Logger:      log,
		CORSOrigins: []string{"http://localhost:5173"},
		JWTSecret:   secret,
		JWTIssuer:   "poflow",
		Metrics:     metrics.New().Handler(),
	}, handlers), dirRepo
}

func TestRouter_Unauthenticated(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/directory/projects", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_Authenticated(t *testing.T) {
	router, dirRepo := newRouter(t)
	dirRepo.EXPECT().ListProjects(gomock.Any()).Return([]directory.Project{}, nil)

	token, err := middleware.IssueToken(secret, "poflow", "jmills", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/directory/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router, _ := newRouter(t)

	for _, path := range []string{"/healthz", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
