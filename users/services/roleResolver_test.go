package services

import (
	"strings"
	"testing"

	"facility-backend/db/models"
)

func TestResolveRoleMappedLabels(t *testing.T) {
	cases := map[string]int{
		"system admin":   models.SystemAdminRoleID,
		"sysadmin":       models.SystemAdminRoleID,
		"sys admin":      models.SystemAdminRoleID,
		"admin official": models.AdminOfficialRoleID,
		"personnel":      models.PersonnelRoleID,
		"standard user":  models.StandardUserRoleID,
		"standard":       models.StandardUserRoleID,
		"user":           models.StandardUserRoleID,
	}

	for label, want := range cases {
		if got := ResolveRole(label); got != want {
			t.Errorf("ResolveRole(%q) = %d, want %d", label, got, want)
		}
		// case-insensitive and whitespace tolerant
		if got := ResolveRole("  " + strings.ToUpper(label) + " "); got != want {
			t.Errorf("ResolveRole(upper %q) = %d, want %d", label, got, want)
		}
	}
}

func TestResolveRoleDefaultsToStandardUser(t *testing.T) {
	for _, label := range []string{"", "  ", "superuser", "Facility Manager", "admin"} {
		if got := ResolveRole(label); got != models.StandardUserRoleID {
			t.Errorf("ResolveRole(%q) = %d, want %d", label, got, models.StandardUserRoleID)
		}
	}
}
