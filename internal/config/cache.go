package config

import "time"

const (
	CacheBackendLocal = "local"
	CacheBackendRedis = "redis"
)

type Cache struct {
	Backend string        `env:"CACHE_BACKEND" envDefault:"local"`
	ViewTTL time.Duration `env:"CACHE_VIEW_TTL" envDefault:"30s"`
}

// Claim ограничивает частоту попыток забронировать подарок.
type Claim struct {
	RatePerMinute int `env:"CLAIM_RATE_LIMIT" envDefault:"30"`
	Burst         int `env:"CLAIM_RATE_BURST" envDefault:"10"`
}
