// Package remote talks to the Apps Script web app that fronts the order
// spreadsheet. The sheet is a best-effort mirror: reads feed the merge in
// the sync service, writes are fire-and-forget.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/omysaju/saju-go/internal/domain"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	// URL is the Apps Script web app endpoint. Empty disables the client.
	URL     string
	Timeout time.Duration
}

// Client is safe for concurrent use. All methods are no-ops returning nil
// when the client is disabled (no URL configured).
type Client struct {
	url string
	hc  *http.Client
	log *slog.Logger
}

func New(cfg Config, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		url: cfg.URL,
		hc:  &http.Client{Timeout: timeout},
		log: log,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// FetchRows downloads the sheet contents as loosely typed rows. The query
// string carries a timestamp so intermediate caches never serve a stale
// snapshot. A response that is not a JSON array yields no rows and no error.
func (c *Client) FetchRows(ctx context.Context) ([]map[string]any, error) {
	const op = "remote.Client.FetchRows"

	if !c.Enabled() {
		return nil, nil
	}

	url := fmt.Sprintf("%s?t=%d", c.url, time.Now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		// The web app answers with an HTML error page or a JSON object on
		// misconfiguration. Treat both as an empty sheet.
		c.log.Warn("sheet returned non-array payload, ignoring", "op", op)
		return nil, nil
	}

	return rows, nil
}

// MirrorCreate pushes a freshly submitted order to the sheet.
func (c *Client) MirrorCreate(ctx context.Context, rec domain.Record) error {
	return c.post(ctx, "remote.Client.MirrorCreate", rec)
}

// MirrorStatus pushes a status change for an existing order.
func (c *Client) MirrorStatus(ctx context.Context, id string, status domain.Status) error {
	return c.post(ctx, "remote.Client.MirrorStatus", map[string]any{
		"action": "updateStatus",
		"id":     id,
		"status": status,
	})
}

// MirrorDelete removes an order from the sheet.
func (c *Client) MirrorDelete(ctx context.Context, id string) error {
	return c.post(ctx, "remote.Client.MirrorDelete", map[string]any{
		"action": "delete",
		"id":     id,
	})
}

func (c *Client) post(ctx context.Context, op string, payload any) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	// Apps Script only accepts simple requests, so the body goes out as
	// text/plain even though it is JSON.
	req.Header.Set("Content-Type", "text/plain")

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: unexpected status %d", op, res.StatusCode)
	}

	return nil
}
