package mysql

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bons-travail/internal/storage"
)

var testStorage *Storage

func TestMain(m *testing.M) {
	// Тестовая БД задаётся через TEST_MYSQL_DSN, без неё пакет пропускается
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		fmt.Println("TEST_MYSQL_DSN не задан, тесты mysql пропущены")
		os.Exit(0)
	}

	var err error
	testStorage, err = New(dsn, true)
	if err != nil {
		panic(fmt.Errorf("не удалось подключиться к тестовой БД: %w", err))
	}

	code := m.Run()

	testStorage.Close()
	os.Exit(code)
}

func cleanupTestDB(t *testing.T) {
	tables := []string{"work_orders", "spare_parts", "users", "options"}
	for _, table := range tables {
		_, err := testStorage.db.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
}

func TestStorage_WorkOrderLifecycle(t *testing.T) {
	cleanupTestDB(t)
	ctx := context.Background()

	require.NoError(t, testStorage.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-1", Date: "2024-01-01", Workstation: "ASL011"}))
	require.NoError(t, testStorage.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-2", Date: "2024-01-02"}))

	err := testStorage.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-1"})
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	updated, err := testStorage.UpdateWorkOrder(ctx, "BT-1", storage.Fields{storage.FieldTechnician: "Ali"})
	require.NoError(t, err)
	assert.Equal(t, "ASL011", updated.Workstation)
	assert.Equal(t, "Ali", updated.Technician)

	_, err = testStorage.UpdateWorkOrder(ctx, "nope", storage.Fields{storage.FieldTechnician: "Ali"})
	require.ErrorIs(t, err, storage.ErrNotFound)

	list, err := testStorage.ListWorkOrders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BT-1", list[0].Code)

	require.NoError(t, testStorage.DeleteWorkOrder(ctx, "BT-1"))
	require.NoError(t, testStorage.DeleteWorkOrder(ctx, "BT-1"))

	_, err = testStorage.GetWorkOrder(ctx, "BT-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_DecrementSparePart(t *testing.T) {
	cleanupTestDB(t)
	ctx := context.Background()

	require.NoError(t, testStorage.UpsertSparePart(ctx, storage.SparePart{Code: "PDR-1", Quantity: 1}))
	require.NoError(t, testStorage.DecrementSparePart(ctx, "PDR-1"))
	require.NoError(t, testStorage.DecrementSparePart(ctx, "PDR-1"))
	require.NoError(t, testStorage.DecrementSparePart(ctx, "unknown"))

	p, err := testStorage.GetSparePart(ctx, "PDR-1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
}

func TestStorage_UsersAndOptions(t *testing.T) {
	cleanupTestDB(t)
	ctx := context.Background()

	u := storage.User{Username: "chef", PasswordHash: "h", Role: storage.RoleManager}
	require.NoError(t, testStorage.CreateUser(ctx, u))
	assert.ErrorIs(t, testStorage.CreateUser(ctx, u), storage.ErrDuplicateUser)

	n, err := testStorage.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, testStorage.SeedOptions(ctx, storage.OptionWorkstation, []string{"ASL011"}))
	require.NoError(t, testStorage.SeedOptions(ctx, storage.OptionWorkstation, []string{"X"}))
	require.NoError(t, testStorage.AppendOption(ctx, storage.OptionWorkstation, "ASL099"))
	require.NoError(t, testStorage.AppendOption(ctx, storage.OptionWorkstation, "ASL099"))

	values, err := testStorage.ListOptions(ctx, storage.OptionWorkstation)
	require.NoError(t, err)
	assert.Equal(t, []string{"ASL011", "ASL099"}, values)
}

// Тест: ключи различают регистр и диакритику
func TestStorage_KeysAreCaseAndAccentSensitive(t *testing.T) {
	cleanupTestDB(t)
	ctx := context.Background()

	require.NoError(t, testStorage.CreateWorkOrder(ctx, storage.WorkOrder{Code: "BT-1", Technician: "Ali"}))
	require.NoError(t, testStorage.CreateWorkOrder(ctx, storage.WorkOrder{Code: "bt-1", Technician: "Sara"}))

	wo, err := testStorage.GetWorkOrder(ctx, "bt-1")
	require.NoError(t, err)
	assert.Equal(t, "bt-1", wo.Code)
	assert.Equal(t, "Sara", wo.Technician)

	require.NoError(t, testStorage.UpsertSparePart(ctx, storage.SparePart{Code: "PDR-A", Quantity: 2}))
	require.NoError(t, testStorage.UpsertSparePart(ctx, storage.SparePart{Code: "pdr-a", Quantity: 7}))

	p, err := testStorage.GetSparePart(ctx, "PDR-A")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Quantity)

	require.NoError(t, testStorage.CreateUser(ctx, storage.User{Username: "chef", PasswordHash: "h", Role: storage.RoleManager}))
	require.NoError(t, testStorage.CreateUser(ctx, storage.User{Username: "Chef", PasswordHash: "h", Role: storage.RoleQualite}))

	u, err := testStorage.GetUser(ctx, "Chef")
	require.NoError(t, err)
	assert.Equal(t, storage.RoleQualite, u.Role)

	require.NoError(t, testStorage.AppendOption(ctx, storage.OptionWorkstation, "Écran/tactile"))
	require.NoError(t, testStorage.AppendOption(ctx, storage.OptionWorkstation, "Ecran/tactile"))

	values, err := testStorage.ListOptions(ctx, storage.OptionWorkstation)
	require.NoError(t, err)
	assert.Equal(t, []string{"Écran/tactile", "Ecran/tactile"}, values)
}
