package schema

// Defaults applied to a push payload when the sender leaves fields empty.
const (
	DefaultPushTitle = "AeroVital Alert"
	DefaultPushBody  = "Air quality update available"
	DefaultPushIcon  = "/icon-192.png"
	DefaultPushTag   = "aqi-alert"
	DefaultPushURL   = "/dashboard"
)

// PushPayload - the wire contract of the spike alert channel. All fields are
// optional on input; ApplyDefaults fills the documented defaults.
type PushPayload struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	Icon               string `json:"icon"`
	Badge              string `json:"badge"`
	Tag                string `json:"tag"`
	RequireInteraction bool   `json:"require_interaction"`
	URL                string `json:"url"`
	Timestamp          int64  `json:"timestamp,omitempty"`
}

func (p PushPayload) ApplyDefaults() PushPayload {
	if p.Title == "" {
		p.Title = DefaultPushTitle
	}
	if p.Body == "" {
		p.Body = DefaultPushBody
	}
	if p.Icon == "" {
		p.Icon = DefaultPushIcon
	}
	if p.Badge == "" {
		p.Badge = p.Icon
	}
	if p.Tag == "" {
		p.Tag = DefaultPushTag
	}
	if p.URL == "" {
		p.URL = DefaultPushURL
	}
	return p
}
