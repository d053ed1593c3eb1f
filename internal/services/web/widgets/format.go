package widgets

import "time"

// DateLayout formats table and list dates.
const DateLayout = "January 02, 2006"

// MonthLayout formats grouped-list section headers.
const MonthLayout = "January 2006"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(DateLayout)
}
