package jsonfile

import (
	"context"
	"fmt"

	"bons-travail/internal/storage"
)

func (s *Storage) readUsers(ctx context.Context) ([]storage.User, error) {
	users := []storage.User{}
	if err := s.load(ctx, fileUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Storage) CreateUser(ctx context.Context, u storage.User) error {
	const op = "storage.jsonfile.CreateUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, existing := range users {
		if existing.Username == u.Username {
			return fmt.Errorf("%s: username=%s: %w", op, u.Username, storage.ErrDuplicateUser)
		}
	}

	users = append(users, u)
	if err := s.save(fileUsers, users); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*storage.User, error) {
	const op = "storage.jsonfile.GetUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, u := range users {
		if u.Username == username {
			return &u, nil
		}
	}

	return nil, fmt.Errorf("%s: username=%s: %w", op, username, storage.ErrNotFound)
}

func (s *Storage) ListUsers(ctx context.Context) ([]storage.User, error) {
	const op = "storage.jsonfile.ListUsers"

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
