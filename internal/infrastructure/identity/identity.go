// Package identity определяет вызывающего по токену или сессионной cookie провайдера входа.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"

	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/contextx"
)

const securePrefix = "__Secure-"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrBearerOff    = errors.New("bearer tokens are not configured")
)

type SessionRepository interface {
	SessionByToken(ctx context.Context, token string, now time.Time) (entity.Session, error)
}

// Claims токена провайдера: идентификатор пользователя в sub или userId.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
}

type Authenticator struct {
	secret   []byte
	cookie   string
	sessions SessionRepository
	cache    *cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewAuthenticator(secret, cookie string, sessions SessionRepository, cacheTTL time.Duration) *Authenticator {
	return &Authenticator{
		secret:   []byte(secret),
		cookie:   cookie,
		sessions: sessions,
		cache:    cache.New(cacheTTL, 2*cacheTTL),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now
	return a
}

// ResolveCaller возвращает пустой UserID для анонимного запроса.
// Ошибка означает, что учётные данные были, но не прошли проверку.
func (a *Authenticator) ResolveCaller(r *http.Request) (contextx.UserID, error) {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		id, err := a.VerifyToken(token)
		if err != nil {
			return "", fmt.Errorf("VerifyToken: %w", err)
		}

		return contextx.UserID(id.String()), nil
	}

	token := a.sessionToken(r)
	if token == "" {
		return "", nil
	}

	id, err := a.lookupSession(r.Context(), token)
	if err != nil {
		return "", fmt.Errorf("lookupSession: %w", err)
	}

	return contextx.UserID(id.String()), nil
}

// VerifyToken проверяет HS256 токен и извлекает пользователя.
func (a *Authenticator) VerifyToken(token string) (value.UserID, error) {
	if len(a.secret) == 0 {
		return value.UserID{}, ErrBearerOff
	}

	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return value.UserID{}, fmt.Errorf("jwt.ParseWithClaims: %w", err)
	}

	if !parsed.Valid {
		return value.UserID{}, ErrInvalidToken
	}

	subject := claims.UserID
	if subject == "" {
		subject = claims.Subject
	}

	id, err := value.ParseUserID(subject)
	if err != nil {
		return value.UserID{}, fmt.Errorf("value.ParseUserID: %w", err)
	}

	return id, nil
}

func (a *Authenticator) sessionToken(r *http.Request) string {
	for _, name := range []string{securePrefix + a.cookie, a.cookie} {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
	}

	return ""
}

// lookupSession кэширует сессию не дольше, чем она действует.
func (a *Authenticator) lookupSession(ctx context.Context, token string) (value.UserID, error) {
	now := a.now()

	if cached, ok := a.cache.Get(token); ok {
		if session, ok := cached.(entity.Session); ok && now.Before(session.Expires) {
			return session.UserID, nil
		}

		a.cache.Delete(token)
	}

	session, err := a.sessions.SessionByToken(ctx, token, now)
	if err != nil {
		return value.UserID{}, fmt.Errorf("sessions.SessionByToken: %w", err)
	}

	if ttl := min(a.cacheTTL, session.Expires.Sub(now)); ttl > 0 {
		a.cache.Set(token, session, ttl)
	}

	return session.UserID, nil
}
