package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ExportFileName builds the download filename for an entity export,
// e.g. "users_export_2026-09-01.csv".
func ExportFileName(entity string) string {
	return fmt.Sprintf("%s_export_%s.csv", entity, Today().Format("2006-01-02"))
}

// WriteCSV renders a header row plus data rows and sends the result as a CSV
// file download on the fiber context.
func WriteCSV(c *fiber.Ctx, fileName string, headers []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Send(buf.Bytes())
}

// FormatTimestamp renders a time for CSV export, blank when zero.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
