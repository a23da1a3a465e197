package services

import (
	"strings"

	"facility-backend/db/models"
)

// MapStatus normalizes free-text status input to the closed maintenance
// status set. Unknown values fall back to pending.
func MapStatus(raw string) models.MaintenanceStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in_progress", "in progress", "started":
		return models.InProgressMaintenanceStatus
	case "completed", "done", "closed":
		return models.CompletedMaintenanceStatus
	case "overdue":
		return models.OverdueMaintenanceStatus
	default:
		return models.PendingMaintenanceStatus
	}
}

// MapPriority normalizes free-text priority input. Unknown values fall back
// to medium.
func MapPriority(raw string) models.MaintenancePriority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "minor":
		return models.LowMaintenancePriority
	case "high", "major":
		return models.HighMaintenancePriority
	case "critical", "urgent":
		return models.CriticalMaintenancePriority
	default:
		return models.MediumMaintenancePriority
	}
}
