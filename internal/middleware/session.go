package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const (
	sessionCookieName = "MARISOL_SESSION"
	sessionMaxAge     = 30 * 24 * time.Hour
)

// SessionData is the state carried in the signed session cookie.
type SessionData struct {
	ID        string    `json:"id"`
	Locale    string    `json:"locale,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	Consent   string    `json:"consent,omitempty"`
	Flash     *Flash    `json:"flash,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool
}

// Flash is a one-shot notice shown after a redirect.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"msg"`
	Ref     string `json:"ref,omitempty"`
}

// SessionConfig controls cookie signing.
type SessionConfig struct {
	Key    []byte
	Secure bool
}

// Session loads or initializes a session and stores it in request context.
// The cookie is written just before the response headers go out.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	key := cfg.Key
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("session: cannot generate signing key: " + err.Error())
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sd, fromCookie := readSessionCookie(r, key)
			if sd.ID == "" {
				sd.ID = randID()
				sd.CreatedAt = time.Now().UTC()
				sd.UpdatedAt = sd.CreatedAt
				sd.CSRFToken = newCSRFToken()
				sd.dirty = true
			}
			ctx := contextWithSession(r.Context(), sd)

			rw, ok := w.(*ResponseRecorder)
			if !ok {
				rw = NewResponseRecorder(w)
			}
			rw.SetBeforeWrite(func(w http.ResponseWriter) {
				if sd.dirty || !fromCookie {
					writeSessionCookie(w, sd, key, cfg.Secure)
				}
			})
			next.ServeHTTP(rw, r.WithContext(ctx))
			// If nothing was written yet (e.g., HEAD), persist cookie now
			if !rw.Wrote() {
				rw.WriteHeader(http.StatusOK)
			}
		})
	}
}

func contextWithSession(ctx context.Context, s *SessionData) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// SetFlash stores a notice for the next page view.
func (s *SessionData) SetFlash(f Flash) {
	s.Flash = &f
	s.MarkDirty()
}

// TakeFlash returns and clears the pending notice.
func (s *SessionData) TakeFlash() *Flash {
	f := s.Flash
	if f != nil {
		s.Flash = nil
		s.MarkDirty()
	}
	return f
}

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request, key []byte) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return &SessionData{}, false
	}
	if !hmac.Equal(sigB, sign(key, payloadB)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func writeSessionCookie(w http.ResponseWriter, sd *SessionData, key []byte, secure bool) {
	b, _ := json.Marshal(sd)
	val := base64.RawURLEncoding.EncodeToString(b) + "." + base64.RawURLEncoding.EncodeToString(sign(key, b))
	// httpOnly to prevent JS access
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionMaxAge),
	})
}

func sign(key, payload []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(payload)
	return mac.Sum(nil)
}

// helpers
func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
