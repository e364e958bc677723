// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client shared by every network-facing
// stage. Headers and timeouts are fixed at construction.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/grant-sampler/pkg/types"
)

// Defaults applied by New when the corresponding config field is zero.
const (
	DefaultUserAgent       = "GrantSampler/1.0 (+https://example.org)"
	DefaultPageTimeout     = 30 * time.Second
	DefaultProbeTimeout    = 15 * time.Second
	DefaultDownloadTimeout = 60 * time.Second
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Client issues GET and HEAD requests with a fixed User-Agent and per-call
// timeouts. It is safe to share; nothing is mutated after New.
type Client struct {
	http *http.Client
	cfg  types.HTTPConfig
}

// New returns a Client for cfg, filling zero fields with defaults.
// When hc is nil a fresh *http.Client is used. The client's own Timeout is
// left alone; each call enforces its timeout through the request context.
func New(cfg types.HTTPConfig, hc *http.Client) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = DefaultPageTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = DefaultDownloadTimeout
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{http: hc, cfg: cfg}
}

// ErrTimeout reports that a call made no progress for its whole timeout:
// no response headers arrived, or the body stopped delivering bytes.
var ErrTimeout = fmt.Errorf("no progress within timeout: %w", context.DeadlineExceeded)

// Response wraps an open response. Its Body re-arms the idle timer on every
// read, so a transfer that keeps delivering bytes is never cut off. Close
// releases the body and the timer.
type Response struct {
	*http.Response
	timer  *time.Timer
	cancel context.CancelCauseFunc
}

// Close closes the body and releases the request context.
func (r *Response) Close() error {
	r.timer.Stop()
	err := r.Body.Close()
	r.cancel(nil)
	return err
}

// Get issues a GET. timeout bounds connecting plus waiting for headers,
// and then every gap between body reads; it never bounds the total
// transfer. A non-2xx status is returned as *StatusError with the body
// already drained and closed. On success the caller must Close the response.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, timeout, true)
}

// Head issues a HEAD bounded by the probe timeout and returns the final
// response headers regardless of status. Redirects are followed.
func (c *Client) Head(ctx context.Context, url string) (http.Header, error) {
	resp, err := c.do(ctx, http.MethodHead, url, c.cfg.ProbeTimeout, false)
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	return resp.Header, nil
}

// GetPage fetches a listing page with the page timeout.
func (c *Client) GetPage(ctx context.Context, url string) (*Response, error) {
	return c.Get(ctx, url, c.cfg.PageTimeout)
}

// GetFile opens a streaming download with the download timeout.
func (c *Client) GetFile(ctx context.Context, url string) (*Response, error) {
	return c.Get(ctx, url, c.cfg.DownloadTimeout)
}

func (c *Client) do(ctx context.Context, method, url string, timeout time.Duration, checkStatus bool) (*Response, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	timer := time.AfterFunc(timeout, func() { cancel(ErrTimeout) })
	release := func() {
		timer.Stop()
		cancel(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		release()
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		err = timeoutCause(ctx, err)
		release()
		return nil, err
	}

	if checkStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		release()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	timer.Reset(timeout)
	resp.Body = &idleBody{ReadCloser: resp.Body, ctx: ctx, timer: timer, timeout: timeout}
	return &Response{Response: resp, timer: timer, cancel: cancel}, nil
}

// idleBody re-arms the request timer whenever bytes arrive.
type idleBody struct {
	io.ReadCloser
	ctx     context.Context
	timer   *time.Timer
	timeout time.Duration
}

func (b *idleBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if n > 0 {
		b.timer.Reset(b.timeout)
	}
	if err != nil && err != io.EOF {
		err = timeoutCause(b.ctx, err)
	}
	return n, err
}

// timeoutCause replaces err with ErrTimeout when the idle timer fired.
func timeoutCause(ctx context.Context, err error) error {
	if errors.Is(context.Cause(ctx), ErrTimeout) {
		return ErrTimeout
	}
	return err
}
