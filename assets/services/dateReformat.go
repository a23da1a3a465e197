package services

import "strings"

// ReformatAcquisitionDate converts a DD/MM/YYYY source date to YYYY-MM-DD by
// positional reassignment. Day and month are moved, not interpreted: the
// source system always exports day-first, and impossible calendar dates pass
// through unchanged. Blank or structurally malformed input means "no
// acquisition date" and returns nil rather than an error.
func ReformatAcquisitionDate(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return nil
	}

	day := strings.TrimSpace(parts[0])
	month := strings.TrimSpace(parts[1])
	year := strings.TrimSpace(parts[2])
	if day == "" || month == "" || year == "" {
		return nil
	}
	if len(day) == 1 {
		day = "0" + day
	}
	if len(month) == 1 {
		month = "0" + month
	}

	iso := year + "-" + month + "-" + day
	return &iso
}
