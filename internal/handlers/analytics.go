package handlers

import "villamarisol.com/marisol-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
	Debug            bool
	// Consented is true once the visitor accepted analytics cookies.
	Consented bool
}

// Enabled reports whether any tag should be rendered.
func (a Analytics) Enabled() bool {
	return a.Consented && (a.GA4MeasurementID != "" || a.GTMContainerID != "")
}

// AnalyticsFromConfig builds Analytics from the loaded configuration.
func AnalyticsFromConfig(cfg config.AnalyticsConfig, consent string) Analytics {
	return Analytics{
		GA4MeasurementID: cfg.GA4MeasurementID,
		GTMContainerID:   cfg.GTMContainerID,
		Debug:            cfg.Debug,
		Consented:        consent == "granted",
	}
}
