package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark/ast"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Home-Getting Started", "home-getting-started"},
		{"Home-Café crème", "home-cafe-creme"},
		{"Page-What's new?", "page-what-s-new"},
		{"Page-Version 1.2", "page-version-1.2"},
		{"123 Page-Intro", "page-intro"},
		{"Page-snake_case", "page-snake_case"},
		{"Page-   ", "page"},
		{"日本", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestRegistry_CollisionsAcrossPages(t *testing.T) {
	reg := NewRegistry()
	home := reg.ForPage("Home")

	assert.Equal(t, "home-intro", string(home.Generate([]byte("Intro"), ast.KindHeading)))
	assert.Equal(t, "home-intro-1", string(home.Generate([]byte("Intro"), ast.KindHeading)))
	assert.Equal(t, "home-intro-2", string(reg.ForPage("Home").Generate([]byte("Intro"), ast.KindHeading)))
	assert.Equal(t, "other-intro", string(reg.ForPage("Other").Generate([]byte("Intro"), ast.KindHeading)))

	assigned := reg.Assigned()
	assert.Len(t, assigned, 4)
	assert.Equal(t, Assignment{Page: "Home", Text: "Intro", ID: "home-intro-1"}, assigned[1])
}

func TestRegistry_EmptySlugFallsBackToSection(t *testing.T) {
	reg := NewRegistry()
	ids := reg.ForPage("日本")

	assert.Equal(t, "section", string(ids.Generate([]byte("中文"), ast.KindHeading)))
	assert.Equal(t, "section-1", string(ids.Generate([]byte("中文"), ast.KindHeading)))
}

func TestRegistry_PutReservesExplicitIDs(t *testing.T) {
	reg := NewRegistry()
	ids := reg.ForPage("Home")
	ids.Put([]byte("home-setup"))

	assert.Equal(t, "home-setup-1", string(ids.Generate([]byte("Setup"), ast.KindHeading)))
	assert.False(t, reg.Reserve("home-setup"))
	assert.True(t, reg.Reserve("fresh"))
}
