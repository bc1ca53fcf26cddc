// Package tasklist owns the to-do list state. Every change goes through Reduce, and the
// visible subset is always derived from the full list with Visible.
package tasklist

import (
	"slices"

	"github.com/mrklmrrr/TODOIST/internal/task"
)

// Drafts are the pending values of the input panel.
type Drafts struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    task.Severity `json:"severity"`
}

type Filters struct {
	Search   string              `json:"search"`
	Severity task.SeverityFilter `json:"severity"`
	ShowDone bool                `json:"show_done"`
}

func DefaultFilters() Filters {
	return Filters{
		Search:   "",
		Severity: task.SeverityAll,
		ShowDone: true,
	}
}

type State struct {
	Tasks   []task.Task `json:"tasks"`
	Drafts  Drafts      `json:"drafts"`
	Filters Filters     `json:"filters"`
}

func NewState() State {
	return State{
		Tasks:   []task.Task{},
		Drafts:  Drafts{Severity: task.SeverityMedium},
		Filters: DefaultFilters(),
	}
}

// Clone returns a State that shares no slice memory with s.
func (s State) Clone() State {
	out := s
	out.Tasks = slices.Clone(s.Tasks)
	if out.Tasks == nil {
		out.Tasks = []task.Task{}
	}
	return out
}

func (s State) Find(id string) (task.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func (s State) Visible() []task.Task {
	return Visible(s.Tasks, s.Filters)
}
