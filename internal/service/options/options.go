package options

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"bons-travail/internal/constants"
	"bons-travail/internal/storage"
)

type OptionStorage interface {
	ListOptions(ctx context.Context, kind string) ([]string, error)
	AppendOption(ctx context.Context, kind, value string) error
	SeedOptions(ctx context.Context, kind string, values []string) error
}

// Catalog holds the initial values of the option lists.
type Catalog struct {
	ProblemDescriptions []string `yaml:"problem_descriptions"`
	Workstations        []string `yaml:"workstations"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		ProblemDescriptions: append([]string(nil), constants.InitialProblemDescriptions...),
		Workstations:        append([]string(nil), constants.InitialWorkstations...),
	}
}

// LoadCatalog reads a YAML catalog. A list missing from the file keeps the built-in values.
func LoadCatalog(path string) (Catalog, error) {
	const op = "service.options.LoadCatalog"

	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	def := DefaultCatalog()
	if len(c.ProblemDescriptions) == 0 {
		c.ProblemDescriptions = def.ProblemDescriptions
	}
	if len(c.Workstations) == 0 {
		c.Workstations = def.Workstations
	}

	return c, nil
}

func (c Catalog) Values(kind string) []string {
	switch kind {
	case storage.OptionProblemDescription:
		return c.ProblemDescriptions
	case storage.OptionWorkstation:
		return c.Workstations
	}
	return nil
}

type OptionsService struct {
	storage OptionStorage
}

func NewOptionsService(storage OptionStorage) *OptionsService {
	return &OptionsService{storage: storage}
}

// Seed fills the lists that are still empty.
func (s *OptionsService) Seed(ctx context.Context, catalog Catalog) error {
	const op = "service.options.Seed"

	for _, kind := range storage.OptionKinds {
		if err := s.storage.SeedOptions(ctx, kind, catalog.Values(kind)); err != nil {
			return fmt.Errorf("%s: kind=%s: %w", op, kind, err)
		}
	}
	return nil
}

func (s *OptionsService) List(ctx context.Context, kind string) ([]string, error) {
	const op = "service.options.List"

	if !storage.IsOptionKind(kind) {
		return nil, storage.NewValidationError("kind", "неизвестный список: "+kind)
	}

	values, err := s.storage.ListOptions(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return values, nil
}

// Append adds value ("Autres...") to the list and returns the list.
// A value already present is not added twice.
func (s *OptionsService) Append(ctx context.Context, kind, value string) ([]string, error) {
	const op = "service.options.Append"

	if !storage.IsOptionKind(kind) {
		return nil, storage.NewValidationError("kind", "неизвестный список: "+kind)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil, storage.NewValidationError("value", "пустое значение")
	}

	if err := s.storage.AppendOption(ctx, kind, value); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.List(ctx, kind)
}
