package jsonfile

import (
	"context"
	"fmt"

	"bons-travail/internal/storage"
)

func (s *Storage) readSpareParts(ctx context.Context) ([]storage.SparePart, error) {
	parts := []storage.SparePart{}
	if err := s.load(ctx, fileSpareParts, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *Storage) UpsertSparePart(ctx context.Context, part storage.SparePart) error {
	const op = "storage.jsonfile.UpsertSparePart"

	if err := part.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.readSpareParts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	found := false
	for i := range parts {
		if parts[i].Code == part.Code {
			parts[i] = part
			found = true
			break
		}
	}
	if !found {
		parts = append(parts, part)
	}

	if err := s.save(fileSpareParts, parts); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetSparePart(ctx context.Context, code string) (*storage.SparePart, error) {
	const op = "storage.jsonfile.GetSparePart"

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.readSpareParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range parts {
		if p.Code == code {
			return &p, nil
		}
	}

	return nil, fmt.Errorf("%s: code=%s: %w", op, code, storage.ErrNotFound)
}

func (s *Storage) ListSpareParts(ctx context.Context) ([]storage.SparePart, error) {
	const op = "storage.jsonfile.ListSpareParts"

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.readSpareParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return parts, nil
}

func (s *Storage) DeleteSparePart(ctx context.Context, code string) error {
	const op = "storage.jsonfile.DeleteSparePart"

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.readSpareParts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kept := parts[:0]
	for _, p := range parts {
		if p.Code != code {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(parts) {
		return nil
	}

	if err := s.save(fileSpareParts, kept); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DecrementSparePart(ctx context.Context, code string) error {
	const op = "storage.jsonfile.DecrementSparePart"

	s.mu.Lock()
	defer s.mu.Unlock()

	parts, err := s.readSpareParts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for i := range parts {
		if parts[i].Code != code {
			continue
		}
		parts[i].Quantity = parts[i].Decremented()
		if err := s.save(fileSpareParts, parts); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	// неизвестная деталь пропускается
	return nil
}
