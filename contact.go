package main

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/lerl/portfolio/internal/config"
	"github.com/lerl/portfolio/internal/logging"
	"github.com/lerl/portfolio/internal/store"
)

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

// Mailer delivers contact messages to the site owner.
type Mailer interface {
	Send(ctx context.Context, m store.Message) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
	to  string
}

func newSMTPMailer(cfg *config.Config) *smtpMailer {
	to := cfg.Contact.ToEmail
	if to == "" {
		to = cfg.SMTP.User
	}
	return &smtpMailer{cfg: cfg.SMTP, to: to}
}

func (m *smtpMailer) Send(ctx context.Context, msg store.Message) error {
	if !m.cfg.Configured() || m.to == "" {
		return errSMTPNotConfigured
	}

	raw := composeMail(m.cfg.User, m.to, msg)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.to}, raw)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

var stripLineBreaks = strings.NewReplacer("\r", "", "\n", "")

// composeMail renders the notification. Visitor input only reaches the
// headers encoded or with line breaks removed.
func composeMail(from, to string, msg store.Message) []byte {
	subject := mime.QEncoding.Encode("utf-8", "Portfolio Contact: "+msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body)

	return []byte("To: " + stripLineBreaks.Replace(to) + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + stripLineBreaks.Replace(from) + "\r\n" +
		"Reply-To: " + stripLineBreaks.Replace(msg.Email) + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		body + "\r\n")
}

// limiters hands out one token bucket per hashed client IP.
type limiters struct {
	mu    sync.Mutex
	every rate.Limit
	burst int
	byKey map[string]*rate.Limiter
}

func newLimiters(perHour, burst int) *limiters {
	return &limiters{
		every: rate.Every(time.Hour / time.Duration(perHour)),
		burst: burst,
		byKey: make(map[string]*rate.Limiter),
	}
}

func (l *limiters) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.byKey[key]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.byKey[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Prune forgets buckets that have refilled completely.
func (l *limiters) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for key, lim := range l.byKey {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.byKey, key)
			n++
		}
	}
	return n
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), "\r\n")
		}); err != nil {
			panic(err)
		}
	}
}

type contactForm struct {
	Name    string `form:"fullName" binding:"required,max=200,singleline"`
	Email   string `form:"email" binding:"required,email,max=320"`
	Message string `form:"message" binding:"required,max=5000"`
}

type contact struct {
	log     *log.Logger
	store   *store.Store
	mailer  Mailer
	hashIP  func(string) string
	limits  *limiters
	timeout time.Duration
}

func newContact(cfg *config.Config, logger *log.Logger, st *store.Store, mailer Mailer, hashIP func(string) string) *contact {
	return &contact{
		log:     logger,
		store:   st,
		mailer:  mailer,
		hashIP:  hashIP,
		limits:  newLimiters(cfg.Contact.RatePerHour, cfg.Contact.Burst),
		timeout: 15 * time.Second,
	}
}

func (h *contact) routes(r *gin.Engine) {
	r.GET("/contact", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title":  "Contact — " + SiteTitle,
			"author": AuthorName,
			"intro":  ContactIntro,
		})
	})

	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact-form.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.POST("/contact", h.submit)
}

func (h *contact) submit(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please enter your name, a valid email address and a message.",
		})
		return
	}

	rid := logging.RequestID(c.Request.Context())
	hashed := h.hashIP(c.ClientIP())
	if !h.limits.Allow(hashed) {
		h.log.Warn("contact rate limited", "visitor", hashed, "request_id", rid)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "You've sent several messages already. Please try again a bit later.",
		})
		return
	}

	msg := store.Message{Name: form.Name, Email: form.Email, Body: form.Message, HashedIP: hashed}
	id, err := h.store.SaveMessage(c.Request.Context(), msg)
	if err != nil {
		h.log.Error("saving contact message", "request_id", rid, "err", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	if err := h.mailer.Send(ctx, msg); err != nil {
		h.log.Error("sending contact email", "id", id, "request_id", rid, "err", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	if err := h.store.MarkDelivered(c.Request.Context(), id); err != nil {
		h.log.Warn("marking message delivered", "id", id, "request_id", rid, "err", err)
	}

	h.log.Info("contact message delivered", "id", id)
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
