package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lerl/portfolio/internal/config"
	"github.com/lerl/portfolio/internal/portfolio"
	"github.com/lerl/portfolio/internal/store"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []store.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg store.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: gin.TestMode, ShutdownTimeout: time.Second, CORSOrigins: []string{"*"}},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "portfolio.db")},
		Site:     config.SiteConfig{ImagesDir: t.TempDir()},
		Admin:    config.AdminConfig{Username: "admin", Password: "secret"},
		Privacy:  config.PrivacyConfig{VisitorRetention: 24 * time.Hour, CleanupSchedule: "@daily"},
		Contact:  config.ContactConfig{RatePerHour: 5, Burst: 2},
	}
}

func newTestApp(t *testing.T, mailer Mailer) (*app, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	st, err := store.Open(cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalog, err := portfolio.Default()
	require.NoError(t, err)

	a := newApp(cfg, discardLogger(), catalog, st, mailer)
	a.admin.spawn = func(f func()) { f() }
	return a, a.router()
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	if req.RemoteAddr == "" {
		req.RemoteAddr = "203.0.113.7:1234"
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	return do(h, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(h, req)
}

// projectSlug finds the slug of the catalog project whose title starts with prefix.
func projectSlug(t *testing.T, a *app, prefix string) string {
	t.Helper()
	for _, p := range a.catalog.Projects {
		if strings.HasPrefix(p.Title, prefix) {
			return p.Slug
		}
	}
	t.Fatalf("no project titled %q", prefix)
	return ""
}
