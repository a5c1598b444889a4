// admin.go - privacy-conscious analytics and the admin area
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/lerl/portfolio/internal/config"
	"github.com/lerl/portfolio/internal/logging"
	"github.com/lerl/portfolio/internal/store"
)

const adminCookie = "admin_token"

type admin struct {
	log       *log.Logger
	store     *store.Store
	token     string
	salt      string
	username  string
	password  string
	retention time.Duration
	secure    bool

	// spawn runs tracking writes off the request path.
	spawn func(func())
}

func newAdmin(cfg *config.Config, logger *log.Logger, st *store.Store) *admin {
	a := &admin{
		log:       logger,
		store:     st,
		token:     generateToken(),
		salt:      generateToken(), // Use for IP hashing
		username:  cfg.Admin.Username,
		password:  cfg.Admin.Password,
		retention: cfg.Privacy.VisitorRetention,
		secure:    cfg.IsRelease(),
		spawn:     func(f func()) { go f() },
	}

	// Default credentials for development only
	if a.username == "" {
		a.username = "admin"
	}
	if a.password == "" {
		if cfg.IsRelease() {
			logger.Warn("ADMIN_PASSWORD not set, admin login disabled")
		} else {
			a.password = "admin123"
			logger.Warn("using default admin credentials, set ADMIN_USERNAME and ADMIN_PASSWORD")
		}
	}

	logger.Info("admin access available", "path", "/admin/login")
	logger.Debug("admin token (dev only)", "token", a.token)
	logger.Info("privacy: visitor tracking enabled with hashed IP addresses")
	return a
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("failed to generate token", "err", err)
	}
	return hex.EncodeToString(b)
}

// hashIP hashes an IP address with the per-process salt. The result is
// stable for one IP while the process lives and cannot be reversed.
func (a *admin) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + a.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (a *admin) authorized(username, password string) bool {
	if a.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func untracked(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin/", "/api/", "/favicon", "/privacy", "/health"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// visitorTracking records page views with hashed IPs. Static files, the
// admin area, the API and visitors sending DNT are skipped.
func (a *admin) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || untracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashed, ua := a.hashIP(c.ClientIP()), c.GetHeader("User-Agent")
		a.spawn(func() {
			if err := a.store.RecordVisit(context.Background(), hashed, ua, path); err != nil {
				a.log.Error("recording visitor", "err", err)
			}
		})
		c.Next()
	}
}

func (a *admin) trackProjectView(c *gin.Context, slug string) {
	if c.GetHeader("DNT") == "1" {
		return
	}
	hashed := a.hashIP(c.ClientIP())
	a.spawn(func() {
		if err := a.store.RecordProjectView(context.Background(), slug, hashed); err != nil {
			a.log.Error("recording project view", "slug", slug, "err", err)
		}
	})
}

// cleanup removes tracking data older than the retention period.
func (a *admin) cleanup() {
	removed, err := a.store.Cleanup(context.Background(), a.retention)
	if err != nil {
		a.log.Error("cleaning up visitor data", "err", err)
		return
	}
	if removed > 0 {
		a.log.Info("privacy cleanup", "removed", removed, "retention", a.retention)
	}
}

func (a *admin) routes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": a.retention,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if a.authorized(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, a.token, 3600*24, "/admin", "", a.secure, true)
			a.log.Info("admin login successful", "visitor", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		a.log.Warn("failed admin login attempt", "visitor", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", a.secure, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(a.authMiddleware())

	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			a.log.Error("loading admin stats", "request_id", logging.RequestID(c.Request.Context()), "err", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.Visitors(c.Request.Context(), 200)
		if err != nil {
			a.log.Error("loading visitors", "request_id", logging.RequestID(c.Request.Context()), "err", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	g.GET("/messages", func(c *gin.Context) {
		msgs, err := a.store.Messages(c.Request.Context(), 200)
		if err != nil {
			a.log.Error("loading messages", "request_id", logging.RequestID(c.Request.Context()), "err", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"title":    "Messages",
			"messages": msgs,
		})
	})

	g.DELETE("/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
			return
		}
		ok, err := a.store.DeleteMessage(c.Request.Context(), id)
		if err != nil {
			a.log.Error("deleting message", "id", id, "request_id", logging.RequestID(c.Request.Context()), "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		a.log.Info("message deleted by admin", "id", id)
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	g.POST("/privacy/cleanup", func(c *gin.Context) {
		a.spawn(a.cleanup)
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	g.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		a.log.Info("admin stats exported", "visitor", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
