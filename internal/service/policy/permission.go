package policy

import "strings"

// Permission is a "resource:action" pair. Resources are "page" and "field",
// the action is the page or field name.
type Permission string

const (
	WildcardAll                = "*"
	PermissionAll   Permission = "*:*"
	resourcePage               = "page"
	resourceField              = "field"
)

func NewPermission(resource, action string) Permission {
	return Permission(resource + ":" + action)
}

func PagePermission(page string) Permission {
	return NewPermission(resourcePage, page)
}

func FieldPermission(field string) Permission {
	return NewPermission(resourceField, field)
}

func (p Permission) Parse() (resource, action string) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// Matches supports "*:*" and "resource:*".
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionAll || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	return res != "" && res == reqRes && act == WildcardAll
}

// Profile is the permission set of a role.
type Profile struct {
	role        string
	permissions []Permission
}

func NewProfile(role string, permissions ...Permission) Profile {
	return Profile{role: role, permissions: permissions}
}

func (p Profile) Role() string { return p.role }

func (p Profile) HasPermission(requested Permission) bool {
	for _, perm := range p.permissions {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}
