// Package gormdb is the PostgreSQL/SQLite backend built on GORM.
package gormdb

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"bons-travail/internal/storage"
)

var _ storage.Store = (*Storage)(nil)

type Storage struct {
	db *gorm.DB
}

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Connect opens PostgreSQL or SQLite (modernc, no cgo) depending on dialect.
func Connect(dialect, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	switch dialect {
	case DialectPostgres:
		return gorm.Open(postgres.Open(dsn), cfg)
	case DialectSQLite:
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// sqlite пишет одним соединением
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func New(dialect, dsn string) (*Storage, error) {
	const op = "storage.gormdb.New"

	db, err := Connect(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{db: db}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) Migrate() error {
	models := []any{&workOrderModel{}, &sparePartModel{}, &userModel{}, &optionModel{}}
	for _, m := range models {
		if err := s.db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
