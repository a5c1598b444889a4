package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerl/portfolio/internal/logging"
	"github.com/lerl/portfolio/internal/store"
)

func contactValues() url.Values {
	return url.Values{
		"fullName": {"Ada Lovelace"},
		"email":    {"ada@example.com"},
		"message":  {"Interested in the OTDR work."},
	}
}

func TestContactPage(t *testing.T) {
	_, h := newTestApp(t, &fakeMailer{})

	w := get(h, "/contact")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hx-get="/contact-form"`)

	w = get(h, "/contact-form")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="fullName"`)
	assert.NotContains(t, w.Body.String(), "<!DOCTYPE html>")
}

func TestContactSubmit(t *testing.T) {
	mailer := &fakeMailer{}
	a, h := newTestApp(t, mailer)

	w := postForm(h, "/contact", contactValues())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message!")

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Ada Lovelace", mailer.sent[0].Name)
	assert.Equal(t, "ada@example.com", mailer.sent[0].Email)
	assert.Len(t, mailer.sent[0].HashedIP, 16)

	msgs, err := a.store.Messages(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Delivered)
}

func TestContactValidation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing name", "fullName", ""},
		{"bad email", "email", "not-an-email"},
		{"missing message", "message", ""},
		{"header injection in name", "fullName", "Eve\r\nBcc: x@y"},
		{"bare newline in name", "fullName", "Eve\nBcc: x@y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			_, h := newTestApp(t, mailer)

			form := contactValues()
			form.Set(tt.field, tt.value)
			w := postForm(h, "/contact", form)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `class="error`)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestContactMailFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	a, h := newTestApp(t, mailer)

	w := postForm(h, "/contact", contactValues())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "there was an error sending your message")

	msgs, err := a.store.Messages(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1, "message is kept for the admin inbox")
	assert.False(t, msgs[0].Delivered)
}

func TestContactErrorsCarryRequestID(t *testing.T) {
	a, h := newTestApp(t, &fakeMailer{err: errors.New("smtp down")})
	var buf bytes.Buffer
	a.contact.log = log.New(&buf)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(contactValues().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(logging.RequestIDHeader, "req-contact-1")
	do(h, req)

	assert.Contains(t, buf.String(), "sending contact email")
	assert.Contains(t, buf.String(), "req-contact-1")
}

func TestComposeMailKeepsVisitorOutOfHeaders(t *testing.T) {
	raw := string(composeMail("me@site.example", "owner@site.example", store.Message{
		Name:  "Eve\r\nBcc: victim@evil.example",
		Email: "eve@example.com\r\nCc: other@evil.example",
		Body:  "hi",
	}))

	headers, body, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)
	for _, line := range strings.Split(headers, "\r\n") {
		name, _, _ := strings.Cut(line, ":")
		assert.Contains(t, []string{"To", "Subject", "From", "Reply-To", "MIME-Version", "Content-Type"}, name, "unexpected header line %q", line)
	}
	assert.NotContains(t, headers, "\nBcc:")
	assert.Contains(t, headers, "Subject: =?utf-8?q?")
	assert.Contains(t, body, "Name: Eve")
}

func TestContactRateLimit(t *testing.T) {
	mailer := &fakeMailer{}
	_, h := newTestApp(t, mailer)

	for i := 0; i < 2; i++ {
		w := postForm(h, "/contact", contactValues())
		require.Contains(t, w.Body.String(), "Thank you")
	}
	w := postForm(h, "/contact", contactValues())
	assert.Contains(t, w.Body.String(), "try again a bit later")
	assert.Len(t, mailer.sent, 2)
}

func TestLimitersPrune(t *testing.T) {
	l := newLimiters(3600, 1)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 0, l.Prune())
}

func TestSMTPMailerNotConfigured(t *testing.T) {
	cfg := testConfig(t)
	m := newSMTPMailer(cfg)
	err := m.Send(t.Context(), contactMessage())
	assert.ErrorIs(t, err, errSMTPNotConfigured)
}
