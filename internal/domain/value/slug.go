package value

import "github.com/samber/lo"

const slugLength = 8

// Slug публичный идентификатор события в ссылке /e/<slug>.
type Slug string

func NewSlug() Slug {
	return Slug(lo.RandomString(slugLength, lo.AlphanumericCharset))
}

func (s Slug) String() string {
	return string(s)
}
