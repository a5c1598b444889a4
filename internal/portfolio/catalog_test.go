package portfolio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, AllTag, c.Tags[0])
	assert.NotEmpty(t, c.Projects)
	assert.Len(t, c.Focus, 3)

	seen := map[string]bool{}
	for _, p := range c.Projects {
		require.NotEmpty(t, p.Slug, p.Title)
		assert.False(t, seen[p.Slug], "duplicate slug %q", p.Slug)
		seen[p.Slug] = true
		assert.NotEqual(t, UndatedKey, YearKey(p.Date), p.Title)
		for _, tag := range p.Tags {
			assert.Contains(t, c.Tags, tag, "%s uses unknown tag %q", p.Title, tag)
		}
	}

	p, ok := c.Project("knockout-roblox-game")
	require.True(t, ok)
	assert.Equal(t, "2020", YearKey(p.Date))
}

func TestLoadAssignsUniqueSlugs(t *testing.T) {
	src := `
tags = ["AI"]

[[projects]]
title = "Román Lab"
date = "2024"

[[projects]]
title = "Roman lab"
date = "2023"

[[projects]]
title = "!!!"
date = "2022"
`
	c, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{AllTag, "AI"}, c.Tags)
	assert.Equal(t, "roman-lab", c.Projects[0].Slug)
	assert.Equal(t, "roman-lab-2", c.Projects[1].Slug)
	assert.Equal(t, "project", c.Projects[2].Slug)

	_, ok := c.Project("missing")
	assert.False(t, ok)
}

func TestLoadKeepsOneAllTag(t *testing.T) {
	c, err := Load(strings.NewReader(`tags = ["AI", "All", "Hardware", "AI"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{AllTag, "AI", "Hardware"}, c.Tags)

	c, err = Load(strings.NewReader(`tags = ["All", "AI"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{AllTag, "AI"}, c.Tags)
}

func TestLoadRejectsUntitledProject(t *testing.T) {
	_, err := Load(strings.NewReader("[[projects]]\ndate = \"2024\"\n"))
	assert.ErrorContains(t, err, "title is required")

	_, err = Load(strings.NewReader("tags = [unterminated"))
	assert.ErrorContains(t, err, "decode catalog")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[projects]]\ntitle = \"Solo\"\ndate = \"2021\"\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "solo", c.Projects[0].Slug)

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestTagStyle(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Contains(t, c.TagStyle("AI"), "bg-blue-100")
	assert.Equal(t, c.DefaultTagStyle, c.TagStyle("Unknown"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "capstone-project-psyche-asteroid", Slugify("Capstone Project – Psyche Asteroid"))
	assert.Equal(t, "luis-enrique-roman-lizasoain", Slugify("Luis Enrique Román Lizasoain"))
	assert.Equal(t, "vienvo-cable-management-startup-www-vienvo-com", Slugify("Vienvo - Cable Management Startup (www.vienvo.com)"))
	assert.Equal(t, "", Slugify("  — "))
}
