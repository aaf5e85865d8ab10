package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoryxin/battlechess/internal/server"
	"github.com/memoryxin/battlechess/internal/services/auth"
	"github.com/memoryxin/battlechess/internal/storage/memory"
	"github.com/memoryxin/battlechess/internal/testutil"
)

type fakeStatus struct {
	status server.Status
}

func (f *fakeStatus) Status() server.Status {
	return f.status
}

func newTestRouter(t *testing.T) (http.Handler, *auth.Service) {
	t.Helper()
	authService := auth.New(memory.New(), testutil.NopLogger())
	router := NewRouter(RouterConfig{
		Logger:      testutil.NopLogger(),
		Status:      &fakeStatus{status: server.Status{Connections: 3, Waiting: 1, Matches: 1}},
		AuthService: authService,
	})
	return router, authService
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"connections":3,"waiting":1,"matches":1}`, rec.Body.String())
}

func TestGetUser(t *testing.T) {
	router, authService := newTestRouter(t)
	_, err := authService.Register(context.Background(), "alice", "pw")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/alice", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"alice","credit":0,"title":"平民"}`, rec.Body.String())
}

func TestGetUserNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/nobody", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/status", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
