package main

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	mw "villamarisol.com/marisol-web/internal/middleware"
)

// templateSet holds the shared layout/partials and one clone per page.
type templateSet struct {
	shared *template.Template
	pages  map[string]*template.Template
}

// renderer parses templates once in production. In dev mode the parsed set is
// dropped whenever a watched template changes.
type renderer struct {
	dir    string
	funcs  template.FuncMap
	dev    bool
	logger *zap.Logger

	mu  sync.RWMutex
	set *templateSet
}

func newRenderer(dir string, funcs template.FuncMap, dev bool, logger *zap.Logger) (*renderer, error) {
	r := &renderer{dir: dir, funcs: funcs, dev: dev, logger: logger}
	if dev {
		return r, nil
	}
	set, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.set = set
	return r, nil
}

// parse reads layouts/ and partials/ into a shared set, then clones it for
// every file under pages/. Note: ParseGlob doesn't support **.
func (r *renderer) parse() (*templateSet, error) {
	var shared, pages []string
	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		rel, _ := filepath.Rel(r.dir, path)
		if strings.HasPrefix(filepath.ToSlash(rel), "pages/") {
			pages = append(pages, path)
		} else {
			shared = append(shared, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(shared) == 0 || len(pages) == 0 {
		return nil, fmt.Errorf("no templates found under %s", r.dir)
	}
	root, err := template.New("_root").Funcs(r.funcs).ParseFiles(shared...)
	if err != nil {
		return nil, err
	}
	set := &templateSet{shared: root, pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		clone, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFiles(p); err != nil {
			return nil, err
		}
		set.pages[strings.TrimSuffix(filepath.Base(p), ".tmpl")] = clone
	}
	return set, nil
}

func (r *renderer) templates() (*templateSet, error) {
	r.mu.RLock()
	set := r.set
	r.mu.RUnlock()
	if set != nil {
		return set, nil
	}
	set, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.set = set
	r.mu.Unlock()
	return set, nil
}

func (r *renderer) invalidate() {
	r.mu.Lock()
	r.set = nil
	r.mu.Unlock()
}

// watch invalidates the parsed set when a template file changes. It blocks
// until ctx is done.
func (r *renderer) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	err = filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	// editors emit bursts of events per save
	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if strings.HasSuffix(ev.Name, ".tmpl") && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				debounce = time.After(100 * time.Millisecond)
			}
		case <-debounce:
			debounce = nil
			r.invalidate()
			r.logger.Debug("templates invalidated", zap.String("dir", r.dir))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("template watcher error", zap.Error(err))
		}
	}
}

// page executes the base layout of a page template.
func (r *renderer) page(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	set, err := r.templates()
	if err != nil {
		r.fail(w, req, "template parse error", err)
		return
	}
	t, ok := set.pages[name]
	if !ok {
		r.fail(w, req, "template missing", fmt.Errorf("page %q", name))
		return
	}
	r.write(w, req, status, t, "base", data)
}

// fragment executes a named partial, for htmx swaps.
func (r *renderer) fragment(w http.ResponseWriter, req *http.Request, name string, data any) {
	set, err := r.templates()
	if err != nil {
		r.fail(w, req, "template parse error", err)
		return
	}
	r.write(w, req, http.StatusOK, set.shared, name, data)
}

func (r *renderer) write(w http.ResponseWriter, req *http.Request, status int, t *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		r.fail(w, req, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (r *renderer) fail(w http.ResponseWriter, req *http.Request, msg string, err error) {
	r.logger.Error(msg, zap.Error(err), zap.String("path", req.URL.Path))
	mw.WriteError(w, req, http.StatusInternalServerError, "template_error", msg)
}
