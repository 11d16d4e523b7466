package dashboard

import "time"

// Config holds the dashboard settings.
type Config struct {
	Title        string        `env:"DASHBOARD_TITLE" envDefault:"Dashboard"`
	PageCookie   string        `env:"DASHBOARD_PAGE_COOKIE" envDefault:"page_id"`
	PageIdle     time.Duration `env:"DASHBOARD_PAGE_IDLE" envDefault:"10m"`
	PruneEvery   time.Duration `env:"DASHBOARD_PRUNE_INTERVAL" envDefault:"1m"`
	StreamBuffer int           `env:"DASHBOARD_STREAM_BUFFER" envDefault:"64"`
	// FormAction is the collaborator path forms are sent to when they carry
	// no _action field.
	FormAction string `env:"DASHBOARD_FORM_ACTION" envDefault:"/admin/submit"`
}

// DefaultConfig returns the envDefault values.
func DefaultConfig() Config {
	return Config{
		Title:        "Dashboard",
		PageCookie:   "page_id",
		PageIdle:     10 * time.Minute,
		PruneEvery:   time.Minute,
		StreamBuffer: 64,
		FormAction:   "/admin/submit",
	}
}
