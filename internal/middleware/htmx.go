package middleware

import (
	"net/http"
	"strings"
)

// HTMXInfo captures the request headers htmx sends.
type HTMXInfo struct {
	Request    bool
	Boosted    bool
	Target     string
	Trigger    string
	CurrentURL string
}

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := HTMXInfo{
			Request:    r.Header.Get("HX-Request") == "true",
			Boosted:    r.Header.Get("HX-Boosted") == "true",
			Target:     strings.TrimSpace(r.Header.Get("HX-Target")),
			Trigger:    strings.TrimSpace(r.Header.Get("HX-Trigger")),
			CurrentURL: strings.TrimSpace(r.Header.Get("HX-Current-URL")),
		}
		// fragments differ from full pages at the same URL
		w.Header().Add("Vary", "HX-Request")
		ctx := WithHTMX(r.Context(), info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireHTMX rejects fragment endpoints reached without htmx. Boosted
// navigations want full pages, so they are rejected as well.
func RequireHTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := HTMXFromContext(r.Context())
		if !info.Request || info.Boosted {
			writeError(w, r, http.StatusBadRequest, "htmx_required", "this endpoint serves htmx fragments")
			return
		}
		next.ServeHTTP(w, r)
	})
}
