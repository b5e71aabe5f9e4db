package main

import (
	"bytes"
	"context"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"villamarisol.com/marisol-web/internal/lazymedia"
	"villamarisol.com/marisol-web/internal/media"
	mw "villamarisol.com/marisol-web/internal/middleware"
	"villamarisol.com/marisol-web/internal/observability"
)

// mediaPlayEvent asks the browser to call play() on the swapped-in video.
const mediaPlayEvent = "media:play"

// mediaFragment activates a deferred gallery item. htmx only issues the
// request once the placeholder enters the viewport grown by its root margin
// (or eagerly when the browser has no IntersectionObserver), so the request itself is the
// visibility event.
func (a *app) mediaFragment(w http.ResponseWriter, r *http.Request) {
	g, ok := a.site.Gallery.Lookup(chi.URLParam(r, "id"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "not_found", "media not found")
		return
	}
	var observer lazymedia.Observer = lazymedia.Intersected{}
	if r.URL.Query().Get("eager") != "" {
		observer = lazymedia.Unavailable{}
	}

	var buf bytes.Buffer
	loader := lazymedia.New(a.mediaTarget(g, true),
		lazymedia.FetchFunc(func(_ context.Context, t lazymedia.Target) error {
			el, err := lazymedia.Element(t)
			if err != nil {
				return err
			}
			buf.WriteString(string(el))
			return nil
		}),
		lazymedia.WithObserver(observer),
		lazymedia.WithPlayer(lazymedia.PlayFunc(func(_ context.Context, t lazymedia.Target) error {
			w.Header().Set("HX-Trigger", `{"`+mediaPlayEvent+`":{"id":"media-`+t.ID+`"}}`)
			return nil
		})),
		lazymedia.WithLogger(observability.FromContext(r.Context())),
	)
	if err := loader.Run(r.Context()); err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "media_error", "media unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "private, max-age=300")
	_, _ = buf.WriteTo(w)
}

// optimizedImage serves /_img. Resizing is delegated to the CDN in front of
// the site; locally the request resolves to the original asset.
func (a *app) optimizedImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src := q.Get("src")
	clean := path.Clean("/" + strings.TrimPrefix(src, "/"))
	if src == "" || !strings.HasPrefix(clean, "/assets/") {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid_src", "src must reference /assets")
		return
	}
	quality, err := strconv.Atoi(q.Get("q"))
	if err != nil {
		quality = a.media.QualityOr(media.CardQuality)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Image-Quality", strconv.Itoa(media.ClampQuality(quality)))
	http.Redirect(w, r, clean, http.StatusFound)
}
