package config

import "time"

type Email struct {
	APIURL  string        `env:"EMAIL_API_URL" envDefault:"https://api.resend.com"`
	APIKey  string        `env:"EMAIL_API_KEY" json:"-"`
	From    string        `env:"EMAIL_FROM" envDefault:"Wishly <noreply@wishly.app>"`
	Timeout time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
}
