package httpgin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omysaju/saju-go/internal/domain"
	"github.com/omysaju/saju-go/internal/remote"
	"github.com/omysaju/saju-go/internal/repository"
	"github.com/omysaju/saju-go/internal/service"
)

const testAdminPassword = "hunter2"

type fakeStore struct {
	records []domain.Record
}

func (f *fakeStore) GetAll(context.Context) ([]domain.Record, error) {
	return append([]domain.Record(nil), f.records...), nil
}

func (f *fakeStore) ReplaceAll(_ context.Context, records []domain.Record) error {
	f.records = append([]domain.Record(nil), records...)
	return nil
}

func (f *fakeStore) Save(_ context.Context, record domain.Record) error {
	f.records = append([]domain.Record{record}, f.records...)
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svcs := service.NewServices(
		store,
		remote.New(remote.Config{}, logger),
		nil, nil, nil, nil,
		logger,
		service.Config{},
	)

	return NewRouter(svcs, nil, testAdminPassword, logger)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Password": testAdminPassword}
}

const validOrderBody = `{"companions":[{
	"gender":"male","name":"김민수",
	"birthYear":"1990","birthMonth":"3","birthDay":"14",
	"phone1":"010","phone2":"1234","phone3":"5678",
	"product":"premium"
}]}`

func TestHealthz(t *testing.T) {
	w := doJSON(t, newTestRouter(&fakeStore{}), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitOrder(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/orders", validOrderBody, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp SubmitOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Order.ID)
	assert.Equal(t, 29800, resp.Total)
	assert.Len(t, store.records, 1)
}

func TestSubmitOrder_ValidationFailure(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	bad := strings.Replace(validOrderBody, `"phone3":"5678"`, `"phone3":"56"`, 1)
	w := doJSON(t, r, http.MethodPost, "/orders", bad, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitOrder_EmptyCompanions(t *testing.T) {
	r := newTestRouter(&fakeStore{})
	w := doJSON(t, r, http.MethodPost, "/orders", `{"companions":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutes_RequirePassword(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/admin/orders"},
		{http.MethodGet, "/admin/stats"},
		{http.MethodPost, "/admin/sync"},
		{http.MethodDelete, "/admin/orders/APP-1"},
	} {
		w := doJSON(t, r, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)

		w = doJSON(t, r, tc.method, tc.path, "", map[string]string{"X-Admin-Password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAdminLogin(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := doJSON(t, r, http.MethodPost, "/admin/login", `{"password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/login", `{"password":"`+testAdminPassword+`"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListOrders(t *testing.T) {
	store := &fakeStore{records: []domain.Record{
		{ID: "APP-1", Status: domain.StatusPending},
		{ID: "APP-2", Status: domain.StatusPaid},
	}}
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodGet, "/admin/orders?page=1&per_page=1", "", adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "APP-1", resp.Orders[0].ID)
}

func TestUpdateStatus(t *testing.T) {
	store := &fakeStore{records: []domain.Record{{ID: "APP-1", Status: domain.StatusPending}}}
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPatch, "/admin/orders/APP-1/status", `{"status":"paid"}`, adminHeaders())
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, domain.StatusPaid, store.records[0].Status)

	w = doJSON(t, r, http.MethodPatch, "/admin/orders/APP-1/status", `{"status":"shipped"}`, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/admin/orders/nope/status", `{"status":"paid"}`, adminHeaders())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrder(t *testing.T) {
	store := &fakeStore{records: []domain.Record{{ID: "APP-1"}}}
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodDelete, "/admin/orders/APP-1", "", adminHeaders())
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.records)

	w = doJSON(t, r, http.MethodDelete, "/admin/orders/APP-1", "", adminHeaders())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLiveSummary_CachedWithETag(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := doJSON(t, r, http.MethodGet, "/live/summary", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=15")

	var sum map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Greater(t, sum["applications"], 0)
}

func TestLiveFeed(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := doJSON(t, r, http.MethodGet, "/live/feed", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var feed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.NotEmpty(t, feed)
}
