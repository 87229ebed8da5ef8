package mysql

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"bons-travail/internal/storage"
)

// Коды ошибок MySQL
const (
	errDuplicateEntry = 1062
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ storage.Store = (*Storage)(nil)

type Storage struct {
	db *sql.DB
}

// New opens the database. The DSN needs parseTime=true.
func New(dsn string, runMigrations bool) (*Storage, error) {
	const op = "storage.mysql.New"

	if runMigrations {
		if err := Migrate(dsn); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Migrate applies the embedded migrations on its own connection.
func Migrate(dsn string) error {
	const op = "storage.mysql.Migrate"

	// файлы миграций могут содержать несколько ALTER подряд
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("%s: разбор DSN: %w", op, err)
	}
	cfg.MultiStatements = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("%s: драйвер миграций: %w", op, err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		driver.Close()
		return fmt.Errorf("%s: источник миграций: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		src.Close()
		driver.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: применение миграций: %w", op, err)
	}

	return nil
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry
}
