package web

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownHTML_TaskFields(t *testing.T) {
	for _, tc := range []struct {
		name     string
		src      string
		contains []string
		excludes []string
	}{
		{
			name:     "headings nest below the section labels",
			src:      "# Steps\n\n## Detail\n\n###### Deep",
			contains: []string{"<h3>Steps</h3>", "<h4>Detail</h4>", "<h6>Deep</h6>"},
			excludes: []string{"<h1>", "<h2>"},
		},
		{
			name:     "external links open in a new tab",
			src:      "See [VA](https://www.va.gov) and [help](/?page=help).",
			contains: []string{`<a href="https://www.va.gov" target="_blank" rel="noopener noreferrer">VA</a>`, `<a href="/?page=help">help</a>`},
		},
		{
			name:     "raw html stays escaped",
			src:      "<script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "blank input",
			src:      "  \n",
			excludes: []string{"<p>"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := string(renderMarkdownHTML(tc.src))
			for _, want := range tc.contains {
				require.Contains(t, got, want)
			}
			for _, bad := range tc.excludes {
				require.NotContains(t, got, bad)
			}
		})
	}
}
