package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicateHeadings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "headings only",
			in:   "<h1>SomeHeader</h1>\n<h2>SomeOtherHeader</h2>",
			want: "",
		},
		{
			name: "nav line kept",
			in:   "<nav>Some cool nav content</nav>\n<h1>SomeHeader</h1>\n<h2>SomeOtherHeader</h2>",
			want: "<nav>Some cool nav content</nav>",
		},
		{
			name: "attributes and mismatched levels",
			in:   "<h3 id=\"x\">Title</h2>\n<p>text</p>",
			want: "<p>text</p>",
		},
		{
			name: "heading inside multi line nav is kept",
			in:   "<nav class=\"toc\">\n<h2>Contents</h2>\n<ul><li>a</li></ul>\n</nav>\n<h1 id=\"a\">a</h1>",
			want: "<nav class=\"toc\">\n<h2>Contents</h2>\n<ul><li>a</li></ul>\n</nav>",
		},
		{
			name: "heading sharing a line with other markup is kept",
			in:   "<p>x</p><h1>y</h1>",
			want: "<p>x</p><h1>y</h1>",
		},
		{
			name: "unclosed nav protects the rest",
			in:   "<h1>gone</h1>\n<nav>\n<h1>kept</h1>",
			want: "<nav>\n<h1>kept</h1>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveDuplicateHeadings(tt.in))
		})
	}
}
