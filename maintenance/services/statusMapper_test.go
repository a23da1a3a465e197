package services

import (
	"testing"

	"facility-backend/db/models"
)

func TestMapStatus(t *testing.T) {
	cases := []struct {
		input string
		want  models.MaintenanceStatus
	}{
		{"pending", models.PendingMaintenanceStatus},
		{"In Progress", models.InProgressMaintenanceStatus},
		{"STARTED", models.InProgressMaintenanceStatus},
		{"done", models.CompletedMaintenanceStatus},
		{"  completed  ", models.CompletedMaintenanceStatus},
		{"overdue", models.OverdueMaintenanceStatus},
		{"", models.PendingMaintenanceStatus},
		{"whatever", models.PendingMaintenanceStatus},
	}
	for _, tc := range cases {
		if got := MapStatus(tc.input); got != tc.want {
			t.Errorf("MapStatus(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMapPriority(t *testing.T) {
	cases := []struct {
		input string
		want  models.MaintenancePriority
	}{
		{"low", models.LowMaintenancePriority},
		{"Minor", models.LowMaintenancePriority},
		{"HIGH", models.HighMaintenancePriority},
		{"urgent", models.CriticalMaintenancePriority},
		{"critical", models.CriticalMaintenancePriority},
		{"", models.MediumMaintenancePriority},
		{"normal", models.MediumMaintenancePriority},
	}
	for _, tc := range cases {
		if got := MapPriority(tc.input); got != tc.want {
			t.Errorf("MapPriority(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
