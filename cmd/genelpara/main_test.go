package main

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const okBody = `{
	"success": true,
	"data": {
		"USD": {"alis": "32.4", "satis": "32.5", "sembol": "TRY", "oran": "0.04", "degisim": "0.12", "yon": "moneyUp", "_source": "doviz"},
		"BTC": {"satis": "2150000", "sembol": "TRY", "degisim": "-1.50", "yon": "moneyDown", "_source": "kripto"}
	},
	"rate_limit": {"remaining": 97, "limit": 100, "reset_at": "2024-01-01 00:00:00"}
}`

func newAPI(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRun_Formats(t *testing.T) {
	srv, _ := newAPI(t, http.StatusOK, okBody)

	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"USD   :    32.5000 TRY ↗", "BTC   : 2150000.0000 TRY ↘", "Rate limit: 97/100"}},
		{"grouped", []string{"DOVIZ:", "KRIPTO:", "  BTC   : 2150000.00 TRY (change: -1.50%)"}},
		{"compare", []string{"COMPARISON", "USD             32.4000      32.5000"}},
		{"json", []string{`"symbol": "USD"`, `"direction": "down"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), []string{
				"-base-url", srv.URL, "-list", "doviz,kripto", "-symbols", "USD,BTC", "-format", tt.format,
			}, &stdout, &stderr)
			require.NoError(t, err)

			for _, want := range tt.want {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestRun_Failures(t *testing.T) {
	t.Run("business_failure", func(t *testing.T) {
		srv, _ := newAPI(t, http.StatusOK, `{"success": false, "error": "Invalid category"}`)

		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-base-url", srv.URL, "-list", "nope"}, &stdout, &stderr)
		assert.ErrorContains(t, err, "Invalid category")
		assert.Contains(t, stdout.String(), "API error: Invalid category")
	})

	t.Run("http_status", func(t *testing.T) {
		srv, _ := newAPI(t, http.StatusInternalServerError, "oops")

		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-base-url", srv.URL}, &stdout, &stderr)
		assert.ErrorContains(t, err, "status 500")
	})

	t.Run("unknown_format", func(t *testing.T) {
		srv, calls := newAPI(t, http.StatusOK, okBody)

		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-base-url", srv.URL, "-format", "xml"}, &stdout, &stderr)
		assert.ErrorContains(t, err, `unknown format "xml"`)
		assert.Zero(t, calls.Load())
	})

	t.Run("invalid_query", func(t *testing.T) {
		srv, calls := newAPI(t, http.StatusOK, okBody)

		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-base-url", srv.URL, "-list", ""}, &stdout, &stderr)
		assert.Error(t, err)
		assert.Zero(t, calls.Load())
	})
}

func TestRun_Watch(t *testing.T) {
	srv, calls := newAPI(t, http.StatusOK, okBody)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	var stdout, stderr bytes.Buffer
	go func() {
		done <- run(ctx, []string{"-base-url", srv.URL, "-watch", "20ms"}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}

	assert.Contains(t, stdout.String(), "USD   :")
}
