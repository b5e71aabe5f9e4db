package middleware

import (
	"context"
	"net/http"

	"villamarisol.com/marisol-web/internal/i18n"
)

const localeCookieName = "hl"

// Locale resolves the preferred language (query `hl`, session, cookie, then
// Accept-Language) and stores it in the session.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
			r = r.WithContext(ctx)
			s := GetSession(r)
			if q := bundle.Match(r.URL.Query().Get("hl")); q != "" {
				if s.Locale != q {
					s.Locale = q
					s.MarkDirty()
				}
				http.SetCookie(w, &http.Cookie{Name: localeCookieName, Value: q, Path: "/", SameSite: http.SameSiteLaxMode})
			} else if !bundle.IsSupported(s.Locale) {
				if c, err := r.Cookie(localeCookieName); err == nil && bundle.Match(c.Value) != "" {
					s.Locale = bundle.Match(c.Value)
				} else {
					s.Locale = bundle.Resolve(r.Header.Get("Accept-Language"))
				}
				s.MarkDirty()
			}
			w.Header().Set("Content-Language", s.Locale)
			next.ServeHTTP(w, r)
		})
	}
}

// Lang returns current lang from session, else the bundle fallback, else "en".
func Lang(r *http.Request) string {
	if s := GetSession(r); s != nil && s.Locale != "" {
		return s.Locale
	}
	if v := r.Context().Value(ctxKeyLocaleFB); v != nil {
		if fb, ok := v.(string); ok && fb != "" {
			return fb
		}
	}
	return "en"
}

// VaryLocale marks dynamic responses as varying by Accept-Language.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
