package gormdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bons-travail/internal/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(DialectSQLite, filepath.Join(t.TempDir(), "bons.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// Тест: дубликат кода отклоняется, запись не меняется
func TestWorkOrder_CreateDuplicate(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-1", Technician: "Ali"}))
	err := s.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-1", Technician: "Sami"})
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	got, err := s.GetWorkOrder(ctx, "BT-1")
	require.NoError(t, err)
	assert.Equal(t, "Ali", got.Technician)
}

func TestWorkOrder_UpdateAndList(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-2", Workstation: "ASL021"}))
	require.NoError(t, s.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-1", Workstation: "ASL011"}))

	fields := storage.Fields{storage.FieldTechnician: "Ali", storage.FieldCode: "BT-9"}
	first, err := s.UpdateWorkOrder(ctx, "BT-1", fields)
	require.NoError(t, err)
	second, err := s.UpdateWorkOrder(ctx, "BT-1", fields)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "BT-1", second.Code)
	assert.Equal(t, "ASL011", second.Workstation)

	_, err = s.UpdateWorkOrder(ctx, "BT-404", fields)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// порядок вставки
	list, err := s.ListWorkOrders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BT-2", list[0].Code)
	assert.Equal(t, "Ali", list[1].Technician)
}

func TestWorkOrder_Delete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteWorkOrder(ctx, "nope"))
	require.NoError(t, s.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-1"}))
	require.NoError(t, s.DeleteWorkOrder(ctx, "BT-1"))

	_, err := s.GetWorkOrder(ctx, "BT-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSparePart_UpsertAndDecrement(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertSparePart(ctx, storage.SparePart{Code: "PDR-1", ComponentName: "Vérin", Quantity: 5}))
	require.NoError(t, s.UpsertSparePart(ctx, storage.SparePart{Code: "PDR-1", ComponentName: "Vérin", Quantity: 1}))

	require.NoError(t, s.DecrementSparePart(ctx, "PDR-1"))
	require.NoError(t, s.DecrementSparePart(ctx, "PDR-1"))
	require.NoError(t, s.DecrementSparePart(ctx, "unknown"))

	list, err := s.ListSpareParts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Quantity)

	require.NoError(t, s.DeleteSparePart(ctx, "PDR-1"))
	_, err = s.GetSparePart(ctx, "PDR-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUsers(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	u := storage.User{Username: "chef", PasswordHash: "h", Role: storage.RoleManager}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.ErrorIs(t, s.CreateUser(ctx, u), storage.ErrDuplicateUser)

	n, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.GetUser(ctx, "chef")
	require.NoError(t, err)
	assert.Equal(t, "h", got.PasswordHash)

	_, err = s.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOptions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SeedOptions(ctx, storage.OptionProblemDescription, []string{"P.E.I.01-PB capteur"}))
	require.NoError(t, s.SeedOptions(ctx, storage.OptionProblemDescription, []string{"other"}))
	require.NoError(t, s.AppendOption(ctx, storage.OptionProblemDescription, "Fuite"))
	require.NoError(t, s.AppendOption(ctx, storage.OptionProblemDescription, "Fuite"))

	values, err := s.ListOptions(ctx, storage.OptionProblemDescription)
	require.NoError(t, err)
	assert.Equal(t, []string{"P.E.I.01-PB capteur", "Fuite"}, values)

	_, err = s.ListOptions(ctx, "colors")
	assert.ErrorIs(t, err, storage.ErrValidation)
}
