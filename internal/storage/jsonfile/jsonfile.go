// Package jsonfile stores records as JSON documents in a directory.
// Every write goes to a temporary file in the same directory which is
// fsynced and renamed over the target, so a reader sees either the previous
// document or the new one.
package jsonfile

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"

	"bons-travail/internal/storage"
)

const (
	fileWorkOrders = "work_orders.json"
	fileSpareParts = "spare_parts.json"
	fileUsers      = "users.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var _ storage.Store = (*Storage)(nil)

type Storage struct {
	dir     string
	mu      sync.Mutex
	schemas map[string]*jsonschema.Schema
}

func New(dir string) (*Storage, error) {
	const op = "storage.jsonfile.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: не удалось создать каталог данных: %w", op, err)
	}

	schemas, err := loadSchemas()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{dir: dir, schemas: schemas}, nil
}

func (s *Storage) Close() error { return nil }

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	schemas := make(map[string]*jsonschema.Schema, len(entries))
	for _, e := range entries {
		b, err := fs.ReadFile(schemaFS, "schemas/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		schemas[strings.TrimSuffix(e.Name(), ".json")] = rs
	}

	return schemas, nil
}

func optionFile(kind string) string {
	return "options_" + kind + ".json"
}

// schemaFor maps a data file to the schema that validates it.
func (s *Storage) schemaFor(name string) *jsonschema.Schema {
	if strings.HasPrefix(name, "options_") {
		return s.schemas["options"]
	}
	return s.schemas[strings.TrimSuffix(name, ".json")]
}

// load reads a data file into v. A missing file leaves v untouched.
func (s *Storage) load(ctx context.Context, name string, v any) error {
	path := filepath.Join(s.dir, name)

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("чтение %s: %w", name, err)
	}

	if rs := s.schemaFor(name); rs != nil {
		keyErrs, err := rs.ValidateBytes(ctx, b)
		if err != nil {
			return fmt.Errorf("файл %s повреждён: %w", name, err)
		}
		if len(keyErrs) > 0 {
			return fmt.Errorf("файл %s не соответствует схеме: %s", name, keyErrs[0].Error())
		}
	}

	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("разбор %s: %w", name, err)
	}

	return nil
}

// save writes v to a temp file and renames it over the target.
func (s *Storage) save(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("временный файл для %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("запись %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("закрытие %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("замена %s: %w", name, err)
	}

	return nil
}
