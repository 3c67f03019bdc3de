package config

import "time"

type Auth struct {
	JWTSecret       string        `env:"AUTH_JWT_SECRET" json:"-"`
	SessionCookie   string        `env:"AUTH_SESSION_COOKIE" envDefault:"authjs.session-token"`
	SessionCacheTTL time.Duration `env:"AUTH_SESSION_CACHE_TTL" envDefault:"1m"`
}
