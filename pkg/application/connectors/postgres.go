package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"wishly/pkg/logx"
)

// Postgres ленивое подключение к базе реестра. DSN принимается и в URL,
// и в keyword/value формате.
type Postgres struct {
	value           *sqlx.DB
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	init            sync.Once
}

func (p *Postgres) Client(ctx context.Context) *sqlx.DB {
	p.init.Do(func() {
		p.value = lo.Must(sqlx.ConnectContext(ctx, "pgx", p.DSN))

		p.value.SetMaxOpenConns(p.MaxOpenConns)
		p.value.SetMaxIdleConns(p.MaxIdleConns)
		p.value.SetConnMaxLifetime(p.ConnMaxLifetime)

		logger(ctx).Info("postgres connected", p.attrs()...)
	})

	return p.value
}

// Check проверка готовности для /ready.
func (p *Postgres) Check(ctx context.Context) error {
	if err := p.value.PingContext(ctx); err != nil {
		return fmt.Errorf("db.PingContext: %w", err)
	}

	return nil
}

func (p *Postgres) Close(ctx context.Context) {
	if err := p.value.Close(); err != nil {
		logger(ctx).Error("postgresClient.Close", logx.Error(err))
	}

	logger(ctx).Info("postgres disconnected", p.attrs()...)
}

// attrs описывает подключение без пароля.
func (p *Postgres) attrs() []any {
	cfg, err := pgx.ParseConfig(p.DSN)
	if err != nil {
		return nil
	}

	return []any{
		slog.String("host", cfg.Host),
		slog.Int("port", int(cfg.Port)),
		slog.String("database", cfg.Database),
		slog.Int("max-open-conns", p.MaxOpenConns),
	}
}
