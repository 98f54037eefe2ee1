package internal

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, in string, out *bytes.Buffer, withShell bool) *App {
	t.Helper()
	t.Setenv("SERVICE_ENV", "test")
	t.Setenv("RABBITMQ_HOST", "")

	app, err := NewApp(context.Background(), Options{
		EnvFile:    filepath.Join(t.TempDir(), "missing.env"),
		HTTP:       false,
		Shell:      withShell,
		In:         strings.NewReader(in),
		Out:        out,
		Registerer: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(app.Close)

	app.InitControllers()
	return app
}

func TestApp_ShellOnlyStopsOnExit(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, "add John Doe\nget 1\nexit\n", &out, true)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(context.Background()) }()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after shell exit")
	}

	assert.Contains(t, out.String(), "John added with ID: 1")
	assert.Contains(t, out.String(), "Hello John Doe")
}

func TestApp_RoutesShareTheServiceWithTheShell(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, "", &out, true)

	// a user created through the shell is visible over HTTP
	require.True(t, app.shell.Execute(context.Background(), "add Jane Smith"))

	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"fullName":"Jane Smith"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	app.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	app.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `userdirectory_general_counters{result="user_created_total"} 1`)
}

func TestApp_StopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, "", &out, false)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop on cancel")
	}
}

func TestAuditOut(t *testing.T) {
	var out bytes.Buffer
	tests := []struct {
		name string
		opts Options
		want io.Writer
	}{
		{name: "shell owns the stream", opts: Options{Shell: true, HTTP: true, Out: &out}, want: nil},
		{name: "http only prints to out", opts: Options{HTTP: true, Out: &out}, want: &out},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auditOut(tt.opts))
		})
	}
}
