// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/grant-sampler/pkg/types"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New(types.HTTPConfig{}, nil).cfg

	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, DefaultPageTimeout, cfg.PageTimeout)
	assert.Equal(t, DefaultProbeTimeout, cfg.ProbeTimeout)
	assert.Equal(t, DefaultDownloadTimeout, cfg.DownloadTimeout)
}

func TestGet_SetsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("hello"))
	}))
	defer ts.Close()

	c := New(types.HTTPConfig{UserAgent: "test-agent/1.0"}, ts.Client())
	resp, err := c.GetPage(context.Background(), ts.URL)
	require.NoError(t, err)
	defer resp.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "test-agent/1.0", gotUA)
}

func TestGet_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(types.HTTPConfig{}, ts.Client())
	resp, err := c.GetFile(context.Background(), ts.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Nil(t, resp)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestGet_Timeout(t *testing.T) {
	done := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(done)

	c := New(types.HTTPConfig{}, ts.Client())
	_, err := c.Get(context.Background(), ts.URL, 20*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

// trickle writes n bytes, one every gap, flushing each so the client sees
// a steady stream, then returns.
func trickle(w http.ResponseWriter, n int, gap time.Duration) {
	f := w.(http.Flusher)
	for i := 0; i < n; i++ {
		w.Write([]byte("x"))
		f.Flush()
		time.Sleep(gap)
	}
}

func TestGet_ActiveBodyOutlivesTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		trickle(w, 12, 50*time.Millisecond)
	}))
	defer ts.Close()

	c := New(types.HTTPConfig{}, ts.Client())
	start := time.Now()
	resp, err := c.Get(context.Background(), ts.URL, 300*time.Millisecond)
	require.NoError(t, err)
	defer resp.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, body, 12)
	assert.Greater(t, time.Since(start), 300*time.Millisecond, "transfer ran past the timeout")
}

func TestGet_StalledBodyTimesOut(t *testing.T) {
	done := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trickle(w, 2, 10*time.Millisecond)
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(done)

	c := New(types.HTTPConfig{}, ts.Client())
	resp, err := c.Get(context.Background(), ts.URL, 100*time.Millisecond)
	require.NoError(t, err)
	defer resp.Close()

	body, err := io.ReadAll(resp.Body)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Len(t, body, 2)
}

func TestGet_CallerCancelIsNotTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	c := New(types.HTTPConfig{}, ts.Client())
	_, err := c.Get(ctx, ts.URL, time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestHead_ReturnsHeadersWithoutStatusCheck(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := New(types.HTTPConfig{}, ts.Client())
	h, err := c.Head(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", h.Get("Content-Type"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHead_ConnectionError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(types.HTTPConfig{}, nil)
	_, err := c.Head(context.Background(), url)
	assert.Error(t, err)
}
