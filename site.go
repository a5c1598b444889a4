package main

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lerl/portfolio/internal/interests"
	"github.com/lerl/portfolio/internal/portfolio"
)

func activeTag(c *gin.Context) string {
	if tag := c.Query("tag"); tag != "" {
		return tag
	}
	return portfolio.AllTag
}

func (a *app) timeline(tag string) []portfolio.YearSection {
	groups := portfolio.GroupByYear(portfolio.Filter(a.catalog.Projects, tag))
	return portfolio.Timeline(groups, portfolio.SortedYears(groups))
}

func (a *app) pageData(tag string) gin.H {
	return gin.H{
		"title":       SiteTitle,
		"description": SiteDescription,
		"author":      AuthorName,
		"greeting":    Greeting,
		"nickname":    Nickname,
		"headline":    Headline,
		"interests":   interestBoxes,
		"terminal":    interests.FirstFrame(),
		"focus":       a.catalog.Focus,
		"tags":        a.catalog.Tags,
		"activeTag":   tag,
		"timeline":    a.timeline(tag),
	}
}

func (a *app) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", a.pageData(activeTag(c)))
}

// projectList is the HTMX swap for the tag filter buttons.
func (a *app) projectList(c *gin.Context) {
	tag := activeTag(c)
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"tags":      a.catalog.Tags,
		"activeTag": tag,
		"timeline":  a.timeline(tag),
	})
}

// projectModal returns the modal fragment for HTMX requests. Direct visits
// get the full page with the modal already open, so project links can be
// shared.
func (a *app) projectModal(c *gin.Context) {
	p, ok := a.catalog.Project(c.Param("slug"))
	if !ok {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{
			"title": "Not found",
			"path":  c.Request.URL.Path,
		})
		return
	}
	a.admin.trackProjectView(c, p.Slug)

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "project-modal.html", p)
		return
	}
	data := a.pageData(portfolio.AllTag)
	data["title"] = p.Title + " — " + SiteTitle
	data["openProject"] = p
	c.HTML(http.StatusOK, "index.html", data)
}

func (a *app) lightbox(c *gin.Context) {
	p, ok := a.catalog.Project(c.Param("slug"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	i, err := strconv.Atoi(c.DefaultQuery("i", "0"))
	if err != nil {
		i = 0
	}
	view, ok := portfolio.Lightbox(p, i)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.HTML(http.StatusOK, "lightbox.html", view)
}

type projectsResponse struct {
	Tag    string                         `json:"tag"`
	Years  []string                       `json:"years"`
	Groups map[string][]portfolio.Project `json:"groups"`
}

func (a *app) apiProjects(c *gin.Context) {
	tag := activeTag(c)
	groups := portfolio.GroupByYear(portfolio.Filter(a.catalog.Projects, tag))
	c.JSON(http.StatusOK, projectsResponse{
		Tag:    tag,
		Years:  portfolio.SortedYears(groups),
		Groups: groups,
	})
}

func (a *app) apiTags(c *gin.Context) {
	styles := make(map[string]string, len(a.catalog.Tags))
	for _, t := range a.catalog.Tags[1:] {
		styles[t] = a.catalog.TagStyle(t)
	}
	c.JSON(http.StatusOK, gin.H{"tags": a.catalog.Tags, "styles": styles})
}

func (a *app) apiInterest(c *gin.Context) {
	scene, ok := interests.Scene(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown scene", "scenes": interests.Names})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, scene)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
