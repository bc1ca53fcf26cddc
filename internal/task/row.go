package task

import (
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultTimeLayout is used when no layout is configured.
const DefaultTimeLayout = "02.01.2006, 15:04:05"

// Row is the read-only presentation of one task.
type Row struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	Done        bool
	Created     string
	Age         string
}

func NewRow(t Task, layout string, now time.Time) Row {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return Row{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Severity:    t.Severity,
		Done:        t.Done,
		Created:     t.CreatedAt.Format(layout),
		Age:         humanize.RelTime(t.CreatedAt, now, "ago", "from now"),
	}
}

func Rows(ts []Task, layout string, now time.Time) []Row {
	out := make([]Row, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewRow(t, layout, now))
	}
	return out
}
