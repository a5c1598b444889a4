// Package portfolio holds the project catalog and the derived views the site
// renders from it: tag filtering, year grouping and the timeline layout.
package portfolio

import (
	"net/url"
	"strings"
)

type Image struct {
	Src     string `toml:"src" json:"src"`
	Alt     string `toml:"alt" json:"alt"`
	Caption string `toml:"caption" json:"caption,omitempty"`
}

type Project struct {
	Slug        string   `toml:"-" json:"slug"`
	Title       string   `toml:"title" json:"title"`
	Description string   `toml:"description" json:"description"`
	Status      string   `toml:"status" json:"status"`
	Tags        []string `toml:"tags" json:"tags"`
	Details     string   `toml:"details" json:"details"`
	Date        string   `toml:"date" json:"date"`
	TechStack   []string `toml:"tech_stack" json:"techStack,omitempty"`
	Images      []Image  `toml:"images" json:"images,omitempty"`
	Role        string   `toml:"role" json:"role,omitempty"`
	Link        string   `toml:"link" json:"link,omitempty"`
	Video       string   `toml:"video" json:"video,omitempty"`
	WorkImage   string   `toml:"work_image" json:"workImage,omitempty"`
}

// FocusItem is one card of the "Current focus" section.
type FocusItem struct {
	Title       string   `toml:"title" json:"title"`
	Description string   `toml:"description" json:"description"`
	Tags        []string `toml:"tags" json:"tags"`
	Link        string   `toml:"link" json:"link,omitempty"`
	LinkText    string   `toml:"link_text" json:"linkText,omitempty"`
	Emoji       string   `toml:"emoji" json:"emoji"`
}

// HasTag reports whether the project is labelled with tag (exact match).
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Logo returns the first image, shown above the timeline card, or nil when
// the project has none.
func (p Project) Logo() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// Previews returns at most two of the images that follow the logo.
func (p Project) Previews() []Image {
	if len(p.Images) <= 1 {
		return nil
	}
	rest := p.Images[1:]
	if len(rest) > 2 {
		rest = rest[:2]
	}
	return rest
}

// EmbedURL converts YouTube watch and short links into the embeddable form.
// Anything else is returned unchanged; an empty video yields "".
func (p Project) EmbedURL() string {
	raw := strings.TrimSpace(p.Video)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
		}
	}
	if id == "" || strings.Contains(id, "/") {
		return raw
	}
	return "https://www.youtube.com/embed/" + id
}
