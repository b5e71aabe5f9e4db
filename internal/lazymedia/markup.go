package lazymedia

import (
	"bytes"
	"html/template"
	"net/url"
)

// Placeholder markup: site.js observes every placeholder with
// IntersectionObserver using data-root-margin and fires load-visible the first
// time it enters the extended viewport; htmx then swaps in the activated
// element. The noscript copy loads eagerly when scripting is off.
var markup = template.Must(template.New("placeholder").Parse(`
{{- define "element" -}}
{{- if eq .Kind "video" -}}
<video id="media-{{.ID}}" src="{{.Src}}"{{if .Poster}} poster="{{.Poster}}"{{end}}{{if .Width}} width="{{.Width}}" height="{{.Height}}"{{end}} preload="metadata" playsinline{{if .Muted}} muted{{end}}{{if .Loop}} loop{{end}}{{if .CanAutoplay}} autoplay{{end}}{{if not .CanAutoplay}} controls{{end}} data-media-id="{{.ID}}"></video>
{{- else -}}
<img id="media-{{.ID}}" src="{{.Src}}" alt="{{.Alt}}"{{if .Width}} width="{{.Width}}" height="{{.Height}}"{{end}} decoding="async" data-media-id="{{.ID}}">
{{- end -}}
{{- end -}}
<div class="lazy-media lazy-media--{{.Target.Kind}}" id="lazy-{{.Target.ID}}" data-lazy-media data-src="{{.Target.Src}}"{{if .Target.Poster}} style="background-image:url('{{.Target.Poster}}')"{{end}} hx-get="{{.Endpoint}}" data-root-margin="{{.Margin}}" hx-trigger="load-visible once, load-eager once" hx-swap="outerHTML"{{if .Target.Width}} data-width="{{.Target.Width}}" data-height="{{.Target.Height}}"{{end}}>
<noscript>{{template "element" .Target}}</noscript>
</div>`))

// DirectiveOptions controls the placeholder.
type DirectiveOptions struct {
	// Endpoint is fetched when the placeholder becomes visible, e.g. /media/g06.
	Endpoint string
	// Margin defaults to DefaultMargin.
	Margin string
}

// Directive renders the deferred placeholder for t.
func Directive(t Target, opts DirectiveOptions) (template.HTML, error) {
	margin := opts.Margin
	if margin == "" {
		margin = DefaultMargin
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = "/media/" + url.PathEscape(t.ID)
	}
	var buf bytes.Buffer
	err := markup.Execute(&buf, struct {
		Target   Target
		Endpoint string
		Margin   string
	}{t, endpoint, margin})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Element renders the activated media element for t.
func Element(t Target) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markup.ExecuteTemplate(&buf, "element", t); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
