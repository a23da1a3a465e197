package services

import (
	"regexp"
	"strings"

	"facility-backend/db/models"
)

func ValidateUser(user *models.User) string {
	if user.FullName == "" {
		return "FullName is required"
	}
	if user.Email == "" {
		return "Email is required"
	}
	if user.Password == "" {
		return "Password is required"
	}
	if user.RoleID < models.SystemAdminRoleID || user.RoleID > models.StandardUserRoleID {
		return "Invalid role"
	}
	return ""
}

func ValidatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}

	var uppercase = regexp.MustCompile(`[A-Z]`)
	if !uppercase.MatchString(password) {
		return "Password must contain at least one uppercase letter"
	}

	var lowercase = regexp.MustCompile(`[a-z]`)
	if !lowercase.MatchString(password) {
		return "Password must contain at least one lowercase letter"
	}

	var digit = regexp.MustCompile(`[0-9]`)
	if !digit.MatchString(password) {
		return "Password must contain at least one digit"
	}

	var specialChar = regexp.MustCompile(`[!@#\$%\^&\*\(\)_\+\-=\[\]\{\};':"\\|,.<>\/?]+`)
	if !specialChar.MatchString(password) {
		return "Password must contain at least one special character"
	}

	return ""
}

func ValidateEmailFormat(email string) bool {
	var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	return emailRegex.MatchString(strings.ToLower(email))
}

// NormalizeUserStatus maps free-text status input onto the closed status set.
func NormalizeUserStatus(raw string) models.UserStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return models.ActiveUserStatus
	case "inactive":
		return models.InactiveUserStatus
	default:
		return models.PendingActivationUserStatus
	}
}

// ValidateImportedUserRow applies the deliberately weak validity check used by
// bulk imports: a non-empty name plus an email containing both "@" and ".".
// Malformed addresses beyond that are caught by the send step, not here.
func ValidateImportedUserRow(name, email string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "invalid email address"
	}
	return ""
}
