package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/format"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/seo"
)

// Renderer parses one template set per page: the base layout, every partial,
// then the page itself.
type Renderer struct {
	fsys fs.FS
	dev  bool

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewRenderer parses templates from fsys. In dev mode templates are reparsed
// on every render.
func NewRenderer(fsys fs.FS, dev bool) (*Renderer, error) {
	r := &Renderer{fsys: fsys, dev: dev}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload reparses every template and swaps the cache.
func (r *Renderer) Reload() error {
	pages, err := parseTemplates(r.fsys)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(page string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pages[page]
	return ok
}

// Render executes page into a buffer and writes it with status.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, data any) {
	if r.dev {
		if err := r.Reload(); err != nil {
			observability.FromContext(req.Context()).Error("template parse failed", zap.Error(err))
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
	}
	r.mu.RLock()
	t, ok := r.pages[page]
	r.mu.RUnlock()
	if !ok {
		observability.FromContext(req.Context()).Error("template missing", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		observability.FromContext(req.Context()).Error("template exec failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	shared := []string{"layouts/*.tmpl", "partials/*.tmpl"}
	base, err := template.New("_root").Funcs(funcMap()).ParseFS(fsys, shared...)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	files, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = t
	}
	return pages, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
		"list": func(items ...any) []any { return items },
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
		"money": func(lang string, amount int64, currency string) string {
			return format.Currency(lang, amount, currency)
		},
		"tons":    format.Tons,
		"number":  func(lang string, n int) string { return format.Number(lang, int64(n)) },
		"percent": format.Percent,
		"percentValue": func(f float64) float64 {
			return math.Round(max(0, min(f, 1)) * 100)
		},
		"date": func(lang string, t time.Time) string { return format.Date(t, lang) },
		"jsonld": func(v any) template.JS { return template.JS(seo.JSON(v)) },
		"query": func(v url.Values) template.URL {
			if len(v) == 0 {
				return ""
			}
			return template.URL("?" + v.Encode())
		},
		"contains": func(list []string, v string) bool {
			for _, s := range list {
				if s == v {
					return true
				}
			}
			return false
		},
		"now": time.Now,
	}
}

// WatchTemplates reloads r whenever a .tmpl file under dir changes. It blocks
// until ctx is done.
func WatchTemplates(ctx context.Context, r *Renderer, dir string, logger *zap.Logger, onChange ...func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return err
	}

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if !isRelevantFile(event.Name) {
				continue
			}
			pending = true
			debounce.Reset(100 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("template watcher error", zap.Error(err))
		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			if err := r.Reload(); err != nil {
				logger.Error("template reload failed", zap.Error(err))
				continue
			}
			for _, fn := range onChange {
				fn()
			}
			logger.Info("templates reloaded")
		}
	}
}

func isRelevantFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tmpl", ".md", ".json":
		return true
	}
	return false
}
