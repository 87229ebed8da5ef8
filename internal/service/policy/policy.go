// Package policy maps roles to the pages they may open and the work-order
// fields they may write.
package policy

import (
	"errors"
	"fmt"
	"sort"

	"bons-travail/internal/storage"
)

const (
	PageDashboard   = "Dashboard"
	PageProduction  = "Production"
	PageMaintenance = "Maintenance"
	PageQualite     = "Qualité"
	PagePDR         = "PDR"
	PageUsers       = "Utilisateurs"
)

var Pages = []string{PageDashboard, PageProduction, PageMaintenance, PageQualite, PagePDR, PageUsers}

// Страницы с формой бона
var WorkOrderPages = []string{PageProduction, PageMaintenance, PageQualite}

var ErrAccessDenied = errors.New("accès refusé")

type AccessDeniedError struct {
	Page string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("Accès refusé à la page %s", e.Page)
}

func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrAccessDenied
}

func fieldPermissions(fields ...string) []Permission {
	perms := make([]Permission, len(fields))
	for i, f := range fields {
		perms[i] = FieldPermission(f)
	}
	return perms
}

var profiles = map[string]Profile{
	storage.RoleProduction: NewProfile(storage.RoleProduction, append(
		[]Permission{PagePermission(PageProduction)},
		fieldPermissions(
			storage.FieldCode,
			storage.FieldDeclarationTime,
			storage.FieldProblemDescription,
			storage.FieldDeclaredBy,
			storage.FieldWorkstation,
			storage.FieldMachineStopped,
			storage.FieldResult,
			storage.FieldAcceptanceCondition,
			storage.FieldProductionDept,
		)...,
	)...),
	storage.RoleMaintenance: NewProfile(storage.RoleMaintenance, append(
		[]Permission{PagePermission(PageMaintenance)},
		fieldPermissions(
			storage.FieldInterventionStartTime,
			storage.FieldInterventionEndTime,
			storage.FieldTechnician,
			storage.FieldObservation,
			storage.FieldMaintenanceDept,
		)...,
	)...),
	storage.RoleQualite: NewProfile(storage.RoleQualite, append(
		[]Permission{PagePermission(PageQualite)},
		fieldPermissions(
			storage.FieldInterventionStartTime,
			storage.FieldInterventionEndTime,
			storage.FieldTechnician,
			storage.FieldObservation,
			storage.FieldQualityDept,
		)...,
	)...),
	storage.RoleManager: NewProfile(storage.RoleManager, PermissionAll),
}

// ProfileFor returns the profile of role; an unknown role gets no permission.
func ProfileFor(role string) Profile {
	if p, ok := profiles[role]; ok {
		return p
	}
	return NewProfile(role)
}

func CanAccess(role, page string) bool {
	return ProfileFor(role).HasPermission(PagePermission(page))
}

// Authorize returns an *AccessDeniedError naming the page when access is refused.
func Authorize(role, page string) error {
	if !CanAccess(role, page) {
		return &AccessDeniedError{Page: page}
	}
	return nil
}

// AuthorizeAny passes when at least one of pages is accessible.
func AuthorizeAny(role string, pages ...string) error {
	for _, page := range pages {
		if CanAccess(role, page) {
			return nil
		}
	}
	if len(pages) == 0 {
		return ErrAccessDenied
	}
	return &AccessDeniedError{Page: pages[0]}
}

// AccessiblePages lists the pages of role in menu order.
func AccessiblePages(role string) []string {
	pages := []string{}
	for _, page := range Pages {
		if CanAccess(role, page) {
			pages = append(pages, page)
		}
	}
	return pages
}

func CanEdit(role, field string) bool {
	return storage.IsWorkOrderField(field) && ProfileFor(role).HasPermission(FieldPermission(field))
}

// EditableFields lists the writable work-order fields of role in record order.
func EditableFields(role string) []string {
	fields := []string{}
	for _, f := range storage.WorkOrderFields {
		if CanEdit(role, f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Filter splits a submission into the fields role may write and the names
// of the fields that were dropped (not editable or unknown).
func Filter(role string, fields storage.Fields) (storage.Fields, []string) {
	allowed := make(storage.Fields, len(fields))
	ignored := []string{}

	for name, v := range fields {
		if CanEdit(role, name) {
			allowed[name] = v
			continue
		}
		ignored = append(ignored, name)
	}

	sort.Strings(ignored)
	return allowed, ignored
}
