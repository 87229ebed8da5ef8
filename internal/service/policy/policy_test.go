package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bons-travail/internal/storage"
)

func TestPermission_Matches(t *testing.T) {
	assert.True(t, PermissionAll.Matches(PagePermission(PagePDR)))
	assert.True(t, Permission("field:*").Matches(FieldPermission(storage.FieldTechnician)))
	assert.False(t, Permission("field:*").Matches(PagePermission(PageProduction)))
	assert.False(t, PagePermission(PageProduction).Matches(PagePermission(PageQualite)))
	assert.False(t, Permission("broken").Matches(Permission("other")))
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		role string
		page string
		want bool
	}{
		{storage.RoleManager, PageDashboard, true},
		{storage.RoleManager, PageUsers, true},
		{storage.RoleProduction, PageProduction, true},
		{storage.RoleProduction, PageDashboard, false},
		{storage.RoleProduction, PageMaintenance, false},
		{storage.RoleMaintenance, PageMaintenance, true},
		{storage.RoleMaintenance, PageQualite, false},
		{storage.RoleQualite, PageQualite, true},
		{storage.RoleQualite, PagePDR, false},
		{"visiteur", PageProduction, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.page, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.role, tt.page))
		})
	}
}

// Тест: отказ содержит имя страницы
func TestAuthorize(t *testing.T) {
	err := Authorize(storage.RoleMaintenance, PageDashboard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
	assert.Equal(t, "Accès refusé à la page Dashboard", err.Error())

	assert.NoError(t, Authorize(storage.RoleManager, PageDashboard))
	assert.NoError(t, AuthorizeAny(storage.RoleQualite, WorkOrderPages...))
	assert.ErrorIs(t, AuthorizeAny(storage.RoleQualite, PageProduction, PagePDR), ErrAccessDenied)
}

func TestEditableFields(t *testing.T) {
	assert.Equal(t, storage.WorkOrderFields, EditableFields(storage.RoleManager))

	assert.ElementsMatch(t, []string{
		storage.FieldCode, storage.FieldDeclarationTime, storage.FieldProblemDescription,
		storage.FieldDeclaredBy, storage.FieldWorkstation, storage.FieldMachineStopped,
		storage.FieldResult, storage.FieldAcceptanceCondition, storage.FieldProductionDept,
	}, EditableFields(storage.RoleProduction))

	assert.ElementsMatch(t, []string{
		storage.FieldInterventionStartTime, storage.FieldInterventionEndTime,
		storage.FieldTechnician, storage.FieldObservation, storage.FieldMaintenanceDept,
	}, EditableFields(storage.RoleMaintenance))

	assert.ElementsMatch(t, []string{
		storage.FieldInterventionStartTime, storage.FieldInterventionEndTime,
		storage.FieldTechnician, storage.FieldObservation, storage.FieldQualityDept,
	}, EditableFields(storage.RoleQualite))

	assert.Empty(t, EditableFields("visiteur"))
}

// Тест: production не может записать technician, поле отбрасывается
func TestFilter(t *testing.T) {
	allowed, ignored := Filter(storage.RoleProduction, storage.Fields{
		storage.FieldWorkstation: "ASL011",
		storage.FieldTechnician:  "Ali",
		"couleur":                "rouge",
	})

	assert.Equal(t, storage.Fields{storage.FieldWorkstation: "ASL011"}, allowed)
	assert.Equal(t, []string{"couleur", storage.FieldTechnician}, ignored)

	allowed, ignored = Filter(storage.RoleManager, storage.Fields{
		storage.FieldTechnician:  "Ali",
		storage.FieldQualityDept: storage.DeptValidated,
	})
	assert.Len(t, allowed, 2)
	assert.Empty(t, ignored)
}

func TestAccessiblePages(t *testing.T) {
	assert.Equal(t, Pages, AccessiblePages(storage.RoleManager))
	assert.Equal(t, []string{PageProduction}, AccessiblePages(storage.RoleProduction))
}
