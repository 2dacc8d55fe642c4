package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omysaju/saju-go/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchRows(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":"APP-1","status":"paid"},{"id":"APP-2"}]`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, testLogger())

	rows, err := c.FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "APP-1", rows[0]["id"])

	// cache buster on every read
	assert.Regexp(t, `^t=\d+$`, gotQuery)
}

func TestFetchRows_NonArrayBodyIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"script misconfigured"}`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, testLogger())

	rows, err := c.FetchRows(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestFetchRows_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, testLogger())

	_, err := c.FetchRows(context.Background())
	assert.Error(t, err)
}

func TestMirrorCreate_PostsRecordAsPlainText(t *testing.T) {
	var (
		gotContentType string
		gotBody        map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, testLogger())

	rec := domain.Record{
		ID:        "APP-1",
		CreatedAt: "2026-02-01T10:00:00Z",
		Status:    domain.StatusPending,
		Companions: []domain.Companion{
			{Name: "김민수", Product: domain.ProductPremium},
		},
	}

	require.NoError(t, c.MirrorCreate(context.Background(), rec))

	// Apps Script rejects preflighted requests, so JSON ships as text/plain
	assert.Equal(t, "text/plain", gotContentType)
	assert.Equal(t, "APP-1", gotBody["id"])
	assert.Equal(t, "pending", gotBody["status"])
}

func TestMirrorStatusAndDelete_ActionPayloads(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var m map[string]any
		_ = json.Unmarshal(body, &m)
		bodies = append(bodies, m)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, testLogger())

	require.NoError(t, c.MirrorStatus(context.Background(), "APP-1", domain.StatusPaid))
	require.NoError(t, c.MirrorDelete(context.Background(), "APP-1"))

	require.Len(t, bodies, 2)
	assert.Equal(t, map[string]any{"action": "updateStatus", "id": "APP-1", "status": "paid"}, bodies[0])
	assert.Equal(t, map[string]any{"action": "delete", "id": "APP-1"}, bodies[1])
}

func TestDisabledClient_NoOps(t *testing.T) {
	c := New(Config{}, testLogger())

	assert.False(t, c.Enabled())

	rows, err := c.FetchRows(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, rows)

	assert.NoError(t, c.MirrorCreate(context.Background(), domain.Record{ID: "x"}))
	assert.NoError(t, c.MirrorStatus(context.Background(), "x", domain.StatusPaid))
	assert.NoError(t, c.MirrorDelete(context.Background(), "x"))
}

func TestMirror_ErrorStatusSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL}, testLogger())
	assert.Error(t, c.MirrorDelete(context.Background(), "x"))
}
