package main

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"villamarisol.com/marisol-web/internal/catalog"
	"villamarisol.com/marisol-web/internal/config"
	"villamarisol.com/marisol-web/internal/content"
	"villamarisol.com/marisol-web/internal/format"
	"villamarisol.com/marisol-web/internal/i18n"
	"villamarisol.com/marisol-web/internal/inquiry"
	"villamarisol.com/marisol-web/internal/lazymedia"
	"villamarisol.com/marisol-web/internal/media"
	mw "villamarisol.com/marisol-web/internal/middleware"
	"villamarisol.com/marisol-web/internal/ratelimit"
)

// app holds everything the handlers need for the lifetime of the process.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	site    *catalog.Site
	bundle  *i18n.Bundle
	pages   *content.Store
	render  *renderer
	inquiry inquiry.Submitter
	media   media.Options
	now     func() time.Time

	closers []io.Closer
}

type appOption func(*app)

// withSubmitter replaces the configured inquiry collaborator.
func withSubmitter(s inquiry.Submitter) appOption {
	return func(a *app) { a.inquiry = s }
}

// withClock fixes the time used for form validation.
func withClock(now func() time.Time) appOption {
	return func(a *app) { a.now = now }
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...appOption) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{
		cfg:    cfg,
		logger: logger,
		media:  media.Options{Optimize: cfg.Media.OptimizeImages, Quality: cfg.Media.ImageQuality},
		now:    time.Now,
	}

	site, err := catalog.LoadSite()
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	a.site = site

	a.bundle, err = i18n.Load(cfg.Server.LocalesDir, cfg.Site.DefaultLocale, cfg.Site.Locales)
	if err != nil {
		return nil, fmt.Errorf("load i18n: %w", err)
	}

	contentOpts := []content.Option{content.WithFallbackLang(cfg.Site.DefaultLocale)}
	if cfg.Server.Dev {
		contentOpts = append(contentOpts, content.WithCacheTTL(0))
	}
	a.pages = content.NewStore(cfg.Server.ContentDir, contentOpts...)

	for _, opt := range opts {
		opt(a)
	}
	if a.inquiry == nil {
		a.inquiry = a.newSubmitter(ctx)
	}

	a.render, err = newRenderer(cfg.Server.TemplatesDir, a.funcMap(), cfg.Server.Dev, logger)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return a, nil
}

// newSubmitter picks the remote client when an endpoint is configured and
// puts the per-client rate limit in front of it. An unreachable Redis falls
// back to the in-process limiter.
func (a *app) newSubmitter(ctx context.Context) inquiry.Submitter {
	var next inquiry.Submitter
	if a.cfg.Inquiry.Endpoint != "" {
		next = inquiry.NewClient(a.cfg.Inquiry.Endpoint, inquiry.ClientOptions{
			Token:   a.cfg.Inquiry.Token,
			Timeout: a.cfg.Inquiry.Timeout,
			Retries: a.cfg.Inquiry.Retries,
			Logger:  a.logger,
		})
	} else {
		next = inquiry.NewFake()
	}

	var limiter ratelimit.Limiter = ratelimit.NewMemory(a.cfg.RateLimit.InquiryPerMinute, time.Minute)
	if url := a.cfg.RateLimit.RedisURL; url != "" {
		client, err := ratelimit.Dial(ctx, url)
		if err != nil {
			a.logger.Warn("rate limiter falling back to memory", zap.Error(err))
		} else {
			a.closers = append(a.closers, client)
			limiter = ratelimit.NewRedis(client, a.cfg.RateLimit.InquiryPerMinute, time.Minute)
		}
	}
	return inquiry.Limited{Next: next, Limiter: limiter}
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close", zap.Error(err))
		}
	}
}

func (a *app) funcMap() template.FuncMap {
	return template.FuncMap{
		"now":     a.now,
		"t":       a.bundle.T,
		"tf":      a.bundle.Tf,
		"price":   format.FmtCurrency,
		"date":    format.FmtDate,
		"minutes": format.FmtMinutes,
		"card":    a.media.Card,
		"hero":    a.media.Hero,
		"srcset": func(src string, widths ...int) string {
			return a.media.SrcSet(src, media.CardQuality, widths...)
		},
		"lazy": func(g catalog.GalleryMedia) (template.HTML, error) {
			return lazymedia.Directive(a.mediaTarget(g, true), lazymedia.DirectiveOptions{})
		},
		"element": func(g catalog.GalleryMedia) (template.HTML, error) {
			return lazymedia.Element(a.mediaTarget(g, false))
		},
		"join":  strings.Join,
		"dict":  dict,
		"swap":  swapPath,
		"add":   func(a, b int) int { return a + b },
		"lower": strings.ToLower,
		"errorKey": func(code string) string {
			return "contact.error." + code
		},
	}
}

func (a *app) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(a.logger))
	r.Use(mw.Recovery(a.logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mw.HTMX)

	// Health check and static files skip sessions.
	r.Get("/healthz", a.healthz)
	r.Get("/robots.txt", a.robots)
	r.Get("/sitemap.xml", a.sitemap)
	assets := http.StripPrefix("/assets", mw.Assets(filepath.Join(a.cfg.Server.PublicDir, "assets"), mw.AssetOptions{Dev: a.cfg.Server.Dev}))
	r.Handle("/assets/*", assets)
	r.Get(media.Endpoint, a.optimizedImage)

	r.Group(func(r chi.Router) {
		r.Use(mw.Session(mw.SessionConfig{Key: []byte(a.cfg.Session.Key), Secure: a.cfg.Session.Secure}))
		r.Use(mw.Locale(a.bundle))
		r.Use(mw.CSRF(a.cfg.Session.Secure))
		r.Use(mw.VaryLocale)

		r.Get("/", a.home)
		r.Get("/rooms", a.rooms)
		r.Get("/rooms/{id}", a.room)
		r.Get("/gallery", a.gallery)
		r.Get("/menu", a.menu)
		r.Get("/spa", a.spa)
		r.Get("/services", a.services)
		r.Get("/about", a.contentPage("about"))
		r.Get("/policies", a.contentPage("policies"))
		r.Get("/privacy", a.contentPage("privacy"))
		r.Get("/contact", a.contact)
		r.Post("/contact", a.contactSubmit)
		r.Post("/consent", a.consent)

		// htmx fragments
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireHTMX)
			r.Get("/gallery/grid", a.galleryGrid)
			r.Get("/gallery/lightbox", a.galleryLightbox)
			r.Get("/rooms/{id}/carousel", a.roomCarousel)
			r.Get("/media/{id}", a.mediaFragment)
		})

		r.NotFound(a.notFound)
	})
	return r
}

// dict builds a map for passing several values to a partial.
func dict(kv ...any) (map[string]any, error) {
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
}

// swapPath keeps the query of href and replaces its path, pointing a full
// page link at its fragment route.
func swapPath(href, path string) string {
	if i := strings.IndexByte(href, '?'); i >= 0 {
		return path + href[i:]
	}
	return path
}
