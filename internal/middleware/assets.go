package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Cache-Control values for static assets. Photos and clips change rarely and
// are large; stylesheets and scripts are revalidated more often.
const (
	mediaCacheControl  = "public, max-age=2592000, stale-while-revalidate=604800"
	scriptCacheControl = "public, max-age=3600, stale-while-revalidate=86400"
	devCacheControl    = "no-cache"
)

var mediaExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".avif": true,
	".svg": true, ".mp4": true, ".webm": true, ".vtt": true,
}

// AssetOptions configures Assets.
type AssetOptions struct {
	// Dev disables client caching; ETags still allow revalidation.
	Dev bool
}

// Assets serves dir with a cache policy per asset kind and weak ETags.
// Paths are relative to dir (mount it behind StripPrefix). Video files keep
// the file server's Range support.
func Assets(dir string, opts AssetOptions) http.Handler {
	tags := &etagCache{dir: dir, entries: map[string]etagEntry{}}
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", cacheControl(r.URL.Path, opts.Dev))
		if et := tags.get(r.URL.Path); et != "" {
			w.Header().Set("ETag", et)
			if r.Header.Get("Range") == "" && etagMatches(r.Header.Get("If-None-Match"), et) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		fs.ServeHTTP(w, r)
	})
}

func cacheControl(p string, dev bool) string {
	switch {
	case dev:
		return devCacheControl
	case mediaExt[strings.ToLower(path.Ext(p))]:
		return mediaCacheControl
	default:
		return scriptCacheControl
	}
}

// etagMatches applies the weak comparison of If-None-Match, which may list
// several tags or be "*".
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

type etagEntry struct {
	size    int64
	modTime time.Time
	tag     string
}

// etagCache hashes a file on first request and again whenever its size or
// modification time changes.
type etagCache struct {
	dir     string
	mu      sync.Mutex
	entries map[string]etagEntry
}

func (c *etagCache) get(urlPath string) string {
	clean := path.Clean("/" + urlPath)
	file := filepath.Join(c.dir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return ""
	}

	c.mu.Lock()
	e, ok := c.entries[clean]
	c.mu.Unlock()
	if ok && e.size == info.Size() && e.modTime.Equal(info.ModTime()) {
		return e.tag
	}

	tag, err := fileETag(file)
	if err != nil {
		return ""
	}
	c.mu.Lock()
	c.entries[clean] = etagEntry{size: info.Size(), modTime: info.ModTime(), tag: tag}
	c.mu.Unlock()
	return tag
}

func fileETag(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil))[:32] + `"`, nil
}
