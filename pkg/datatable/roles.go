package datatable

import (
	"fmt"
	"sort"
)

// Role tags mark auxiliary columns that describe the data column before them.
const (
	RoleAnnotation     = "annotation"
	RoleAnnotationText = "annotationText"
	RoleCertainty      = "certainty"
	RoleData           = "data"
	RoleDomain         = "domain"
	RoleEmphasis       = "emphasis"
	RoleID             = "id"
	RoleInterval       = "interval"
	RoleScope          = "scope"
	RoleStyle          = "style"
	RoleTooltip        = "tooltip"
)

var roles = map[string]struct{}{
	RoleAnnotation:     {},
	RoleAnnotationText: {},
	RoleCertainty:      {},
	RoleData:           {},
	RoleDomain:         {},
	RoleEmphasis:       {},
	RoleID:             {},
	RoleInterval:       {},
	RoleScope:          {},
	RoleStyle:          {},
	RoleTooltip:        {},
}

// IsValidRole reports whether role is a registered role tag
func IsValidRole(role string) bool {
	_, ok := roles[role]
	return ok
}

// Roles returns every registered role tag in sorted order
func Roles() []string {
	out := make([]string, 0, len(roles))
	for r := range roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func validateRole(role string) error {
	if role == "" || IsValidRole(role) {
		return nil
	}
	return fmt.Errorf("%w: %q (valid roles are %v)", ErrInvalidColumnRole, role, Roles())
}
