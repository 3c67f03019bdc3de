package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
)

// EnvDSN переменная окружения с DSN тестовой базы.
const EnvDSN = "TEST_PG_DSN"

// Open подключается к тестовой базе из TEST_PG_DSN, прогоняет migrate и
// очищает перечисленные таблицы после теста. Без DSN тест пропускается.
func Open(t *testing.T, migrate func(context.Context, *sql.DB) error, tables ...string) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	ctx := context.Background()

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		t.Fatalf("sqlx.ConnectContext: %v", err)
	}

	if err = migrate(ctx, db.DB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if len(tables) > 0 {
			if _, err := db.Exec("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE"); err != nil {
				t.Errorf("truncate: %v", err)
			}
		}

		db.Close()
	})

	return db
}

// MigrateFromFile executes all SQL queries from the files over a database
// connection. Used for seeding fixtures.
func MigrateFromFile(db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fh, err := os.Open(fileName)
		if err != nil {
			return fmt.Errorf("os.Open: %w", err)
		}

		fileBytes, err := io.ReadAll(fh)
		if err != nil {
			return fmt.Errorf("io.ReadAll: %w", err)
		}

		if err = fh.Close(); err != nil {
			return fmt.Errorf("fh.Close: %w", err)
		}

		if _, err = db.Exec(string(fileBytes)); err != nil {
			return fmt.Errorf("db.Exec: %w", err)
		}
	}

	return nil
}
