package tasklist

import "github.com/mrklmrrr/TODOIST/internal/task"

// Visible returns the tasks passing every filter, in insertion order.
func Visible(ts []task.Task, f Filters) []task.Task {
	out := make([]task.Task, 0, len(ts))
	for _, t := range ts {
		if !f.Severity.Allows(t.Severity) {
			continue
		}
		if !f.ShowDone && t.Done {
			continue
		}
		if !t.Matches(f.Search) {
			continue
		}
		out = append(out, t)
	}
	return out
}
