package jsonfile

import (
	"context"
	"fmt"
	"slices"

	"bons-travail/internal/storage"
)

func (s *Storage) readOptions(ctx context.Context, kind string) ([]string, error) {
	if !storage.IsOptionKind(kind) {
		return nil, storage.NewValidationError("kind", "неизвестный список: "+kind)
	}
	values := []string{}
	if err := s.load(ctx, optionFile(kind), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *Storage) ListOptions(ctx context.Context, kind string) ([]string, error) {
	const op = "storage.jsonfile.ListOptions"

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readOptions(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return values, nil
}

func (s *Storage) AppendOption(ctx context.Context, kind, value string) error {
	const op = "storage.jsonfile.AppendOption"

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readOptions(ctx, kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if slices.Contains(values, value) {
		return nil
	}

	if err := s.save(optionFile(kind), append(values, value)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SeedOptions(ctx context.Context, kind string, seed []string) error {
	const op = "storage.jsonfile.SeedOptions"

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readOptions(ctx, kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(values) > 0 || len(seed) == 0 {
		return nil
	}

	if err := s.save(optionFile(kind), seed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
