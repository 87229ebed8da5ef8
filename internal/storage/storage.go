package storage

import "context"

// WorkOrderStore keeps work orders keyed by their code.
type WorkOrderStore interface {
	// CreateWorkOrder fails with ErrDuplicateKey when the code is taken.
	CreateWorkOrder(ctx context.Context, wo WorkOrder) error
	// UpdateWorkOrder merges fields into the stored record, ErrNotFound when absent.
	UpdateWorkOrder(ctx context.Context, code string, fields Fields) (*WorkOrder, error)
	// DeleteWorkOrder is a no-op for an unknown code.
	DeleteWorkOrder(ctx context.Context, code string) error
	GetWorkOrder(ctx context.Context, code string) (*WorkOrder, error)
	// ListWorkOrders returns records in insertion order.
	ListWorkOrders(ctx context.Context) ([]WorkOrder, error)
}

type SparePartStore interface {
	UpsertSparePart(ctx context.Context, part SparePart) error
	GetSparePart(ctx context.Context, code string) (*SparePart, error)
	ListSpareParts(ctx context.Context) ([]SparePart, error)
	DeleteSparePart(ctx context.Context, code string) error
	// DecrementSparePart takes one part out of stock, never below zero.
	// An unknown code is silently skipped.
	DecrementSparePart(ctx context.Context, code string) error
}

type UserStore interface {
	CreateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CountUsers(ctx context.Context) (int, error)
}

type OptionStore interface {
	ListOptions(ctx context.Context, kind string) ([]string, error)
	AppendOption(ctx context.Context, kind, value string) error
	// SeedOptions writes values only when the kind has no value yet.
	SeedOptions(ctx context.Context, kind string, values []string) error
}

// Store is implemented by every backend (jsonfile, mysql, gormdb).
type Store interface {
	WorkOrderStore
	SparePartStore
	UserStore
	OptionStore
	Close() error
}
