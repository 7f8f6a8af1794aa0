// Package content loads localized markdown pages with YAML front matter and
// renders them to sanitized HTML.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no locale variant of a page exists.
var ErrNotFound = errors.New("content: page not found")

// Page is a rendered content page.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	HTML      template.HTML
	UpdatedAt time.Time
	FAQ       []FAQ
	Fallback  bool
}

// FAQ is a question/answer pair rendered as an accordion.
type FAQ struct {
	Question string `yaml:"q"`
	Answer   string `yaml:"a"`
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
	FAQ       []FAQ  `yaml:"faq"`
}

// Store reads <lang>/<slug>.md from an fs.FS and caches rendered pages.
type Store struct {
	fsys     fs.FS
	fallback string
	md       goldmark.Markdown
	policy   *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]Page
}

// NewStore returns a store over fsys. Pages missing in a locale fall back to
// the fallback locale.
func NewStore(fsys fs.FS, fallback string) *Store {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h2", "h3", "h4")
	policy.AllowAttrs("class").OnElements("table", "p", "span")
	policy.RequireNoFollowOnLinks(true)
	return &Store{
		fsys:     fsys,
		fallback: fallback,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: policy,
		cache:  map[string]Page{},
	}
}

// Page returns the page for slug in lang, falling back to the default locale.
func (s *Store) Page(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	key := lang + "|" + slug
	s.mu.RLock()
	page, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return page, nil
	}

	candidates := []string{lang}
	if lang != s.fallback {
		candidates = append(candidates, s.fallback)
	}
	for _, candidate := range candidates {
		page, err := s.read(slug, candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		page.Fallback = candidate != lang
		s.mu.Lock()
		s.cache[key] = page
		s.mu.Unlock()
		return page, nil
	}
	return Page{}, ErrNotFound
}

// Reset drops cached pages so edits on disk are picked up.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = map[string]Page{}
	s.mu.Unlock()
}

func (s *Store) read(slug, lang string) (Page, error) {
	file := path.Join(lang, slug+".md")
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	page := Page{
		Slug:      slug,
		Lang:      lang,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		HTML:      template.HTML(s.policy.SanitizeBytes(buf.Bytes())),
		UpdatedAt: parseDate(front.UpdatedAt),
		FAQ:       front.FAQ,
	}
	if page.Title == "" {
		page.Title = prettifySlug(path.Base(slug))
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	s := strings.ReplaceAll(slug, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sanitizeSlug keeps lowercase letters, digits, dashes and inner slashes.
func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.ToLower(strings.TrimSpace(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") {
		return ""
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '/':
		default:
			return ""
		}
	}
	return slug
}
