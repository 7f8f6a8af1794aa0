package content

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func testStore() *Store {
	return NewStore(fstest.MapFS{
		"en/services.md":      {Data: []byte("---\ntitle: Services\nsummary: What we do\nupdated_at: 2024-03-01\nfaq:\n  - q: Minimum order?\n    a: One container.\n---\n## Sourcing\n\nWe source **board**.\n\n<script>alert(1)</script>\n")},
		"tr/services.md":      {Data: []byte("---\ntitle: Hizmetler\n---\nTedarik.\n")},
		"en/legal/privacy.md": {Data: []byte("# Privacy\n\nNo tracking.\n")},
		"en/broken.md":        {Data: []byte("---\ntitle: [unclosed\n---\nbody\n")},
	}, "en")
}

func TestPageRendersMarkdownAndFrontMatter(t *testing.T) {
	page, err := testStore().Page("services", "en")
	require.NoError(t, err)
	require.Equal(t, "Services", page.Title)
	require.Equal(t, "What we do", page.Summary)
	require.Equal(t, 2024, page.UpdatedAt.Year())
	require.Len(t, page.FAQ, 1)
	require.Equal(t, "One container.", page.FAQ[0].Answer)
	html := string(page.HTML)
	require.Contains(t, html, `<h2 id="sourcing">Sourcing</h2>`)
	require.Contains(t, html, "<strong>board</strong>")
	require.NotContains(t, html, "<script>")
	require.False(t, page.Fallback)
}

func TestPageFallsBackToDefaultLocale(t *testing.T) {
	s := testStore()
	page, err := s.Page("services", "tr")
	require.NoError(t, err)
	require.Equal(t, "Hizmetler", page.Title)

	page, err = s.Page("legal/privacy", "ar")
	require.NoError(t, err)
	require.True(t, page.Fallback)
	require.Equal(t, "en", page.Lang)
	require.Equal(t, "Privacy", page.Title)
}

func TestPageNotFoundAndInvalid(t *testing.T) {
	s := testStore()
	for _, slug := range []string{"missing", "", "../etc/passwd", "Services!"} {
		_, err := s.Page(slug, "en")
		require.ErrorIs(t, err, ErrNotFound, slug)
	}
	_, err := s.Page("broken", "en")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "front matter"))
}

func TestResetDropsCache(t *testing.T) {
	fsys := fstest.MapFS{"en/about.md": {Data: []byte("---\ntitle: One\n---\n")}}
	s := NewStore(fsys, "en")
	page, err := s.Page("about", "en")
	require.NoError(t, err)
	require.Equal(t, "One", page.Title)

	fsys["en/about.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Two\n---\n")}
	page, _ = s.Page("about", "en")
	require.Equal(t, "One", page.Title)
	s.Reset()
	page, _ = s.Page("about", "en")
	require.Equal(t, "Two", page.Title)
}
