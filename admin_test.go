package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerl/portfolio/internal/store"
)

func contactMessage() store.Message {
	return store.Message{Name: "Ada", Email: "ada@example.com", Body: "Hello", HashedIP: "abc"}
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	w := postForm(h, "/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("no admin cookie set")
	return nil
}

func adminGet(h http.Handler, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return do(h, req)
}

func TestAdminLoginRejected(t *testing.T) {
	_, h := newTestApp(t, &fakeMailer{})

	w := postForm(h, "/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestAdminRequiresLogin(t *testing.T) {
	_, h := newTestApp(t, &fakeMailer{})

	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/messages"} {
		w := adminGet(h, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}

	w := adminGet(h, "/admin/dashboard", &http.Cookie{Name: adminCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdminDashboard(t *testing.T) {
	a, h := newTestApp(t, &fakeMailer{})
	get(h, "/")
	get(h, "/?tag=AI")

	cookie := login(t, h)
	w := adminGet(h, "/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unique visitors")

	w = adminGet(h, "/admin/api/stats", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var stats store.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 2, stats.TotalVisitors)
	assert.EqualValues(t, 1, stats.UniqueVisitors)

	visits, err := a.store.Visitors(t.Context(), 10)
	require.NoError(t, err)
	for _, v := range visits {
		assert.Len(t, v.HashedIP, 16)
		assert.NotEqual(t, "/admin/dashboard", v.Path)
	}
}

func TestVisitorTrackingSkips(t *testing.T) {
	a, h := newTestApp(t, &fakeMailer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	do(h, req)
	get(h, "/api/tags")
	get(h, "/static/css/site.css")
	get(h, "/privacy")

	visits, err := a.store.Visitors(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestAdminMessages(t *testing.T) {
	a, h := newTestApp(t, &fakeMailer{})
	id, err := a.store.SaveMessage(t.Context(), contactMessage())
	require.NoError(t, err)

	cookie := login(t, h)
	w := adminGet(h, "/admin/messages", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.com")

	del := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/admin/messages/"+id, nil)
		req.AddCookie(cookie)
		return do(h, req)
	}
	assert.Equal(t, http.StatusOK, del(strconv.FormatInt(id, 10)).Code)
	assert.Equal(t, http.StatusNotFound, del(strconv.FormatInt(id, 10)).Code)
	assert.Equal(t, http.StatusBadRequest, del("abc").Code)
}

func TestAdminExportAndCleanup(t *testing.T) {
	_, h := newTestApp(t, &fakeMailer{})
	cookie := login(t, h)

	w := adminGet(h, "/admin/export/stats", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin-stats.json")

	req := httptest.NewRequest(http.MethodPost, "/admin/privacy/cleanup", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusOK, do(h, req).Code)
}

func TestPrivacyPage(t *testing.T) {
	_, h := newTestApp(t, &fakeMailer{})

	w := get(h, "/privacy")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "after 1 days")
}

func TestHashIP(t *testing.T) {
	a, _ := newTestApp(t, &fakeMailer{})

	h1 := a.admin.hashIP("198.51.100.1")
	assert.Len(t, h1, 16)
	assert.Equal(t, h1, a.admin.hashIP("198.51.100.1"))
	assert.NotEqual(t, h1, a.admin.hashIP("198.51.100.2"))
}

func TestAdminDisabledInReleaseWithoutPassword(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Mode = "release"
	cfg.Admin.Password = ""
	adm := newAdmin(cfg, discardLogger(), nil)
	assert.False(t, adm.authorized("admin", ""))
	assert.False(t, adm.authorized("admin", "admin123"))
}
