package services

import (
	"strings"

	"facility-backend/db/models"
)

// roleLabels maps normalized free-text role labels to role IDs.
var roleLabels = map[string]int{
	"system admin":   models.SystemAdminRoleID,
	"sysadmin":       models.SystemAdminRoleID,
	"sys admin":      models.SystemAdminRoleID,
	"admin official": models.AdminOfficialRoleID,
	"personnel":      models.PersonnelRoleID,
	"standard user":  models.StandardUserRoleID,
	"standard":       models.StandardUserRoleID,
	"user":           models.StandardUserRoleID,
}

// ResolveRole maps a free-text role label to a role ID, case-insensitively.
// Anything unmatched, including a blank label, resolves to Standard User:
// imported accounts default to least privilege rather than failing the row.
func ResolveRole(label string) int {
	if roleID, ok := roleLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return roleID
	}
	return models.StandardUserRoleID
}
