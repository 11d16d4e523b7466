package cookie

import (
	"net/http"
	"strings"
)

// Config is the environment form of the manager settings. COOKIE_SECRETS is
// a comma separated list, newest first.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS,required"`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"`
}

// NewFromConfig creates a Manager from cfg. Extra options are applied last.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	var secrets []string
	for _, s := range strings.Split(cfg.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	base := []Option{
		WithDomain(cfg.Domain),
		WithMaxAge(cfg.MaxAge),
		WithSecure(cfg.Secure),
	}
	if cfg.Path != "" {
		base = append(base, WithPath(cfg.Path))
	}
	if cfg.SameSite != 0 {
		base = append(base, WithSameSite(cfg.SameSite))
	}
	return New(secrets, append(base, opts...)...)
}
