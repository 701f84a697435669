package ui

import (
	"fmt"
	"time"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

func formatCapacity(count, limit int) string {
	if limit > 0 {
		return fmt.Sprintf("%d/%d attendees", count, limit)
	}
	return fmt.Sprintf("%d attendees", count)
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
