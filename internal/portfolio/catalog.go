package portfolio

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Catalog is everything the site shows about its author's work.
type Catalog struct {
	Tags            []string          `toml:"tags"`
	TagStyles       map[string]string `toml:"tag_styles"`
	DefaultTagStyle string            `toml:"default_tag_style"`
	Focus           []FocusItem       `toml:"focus"`
	Projects        []Project         `toml:"projects"`

	bySlug map[string]int
}

// Default decodes the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile decodes a catalog from a TOML file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a TOML catalog, assigning project slugs.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.prepare(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) prepare() error {
	tags := []string{AllTag}
	for _, t := range c.Tags {
		if t != AllTag && !slices.Contains(tags, t) {
			tags = append(tags, t)
		}
	}
	c.Tags = tags

	c.bySlug = make(map[string]int, len(c.Projects))
	for i := range c.Projects {
		p := &c.Projects[i]
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("project %d: title is required", i)
		}
		base := Slugify(p.Title)
		if base == "" {
			base = "project"
		}
		slug := base
		for n := 2; ; n++ {
			if _, taken := c.bySlug[slug]; !taken {
				break
			}
			slug = base + "-" + strconv.Itoa(n)
		}
		p.Slug = slug
		c.bySlug[slug] = i
	}
	return nil
}

// Project looks a project up by slug.
func (c *Catalog) Project(slug string) (Project, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Project{}, false
	}
	return c.Projects[i], true
}

// TagStyle returns the CSS classes for a tag badge.
func (c *Catalog) TagStyle(tag string) string {
	if s, ok := c.TagStyles[tag]; ok {
		return s
	}
	return c.DefaultTagStyle
}

// Slugify folds accents and reduces s to lowercase ASCII words joined by
// hyphens: "Capstone Project – Psyche" becomes "capstone-project-psyche".
func Slugify(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			hyphen = false
			continue
		}
		hyphen = true
	}
	return b.String()
}
