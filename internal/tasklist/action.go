package tasklist

import "github.com/mrklmrrr/TODOIST/internal/task"

// Action is a user intent. Reduce is the only place actions take effect.
type Action interface {
	Name() string
}

type AddTask struct{}

type GenerateTasks struct {
	Count int
}

type ToggleDone struct {
	ID string
}

type SetTitleDraft struct {
	Title string
}

type SetDescriptionDraft struct {
	Description string
}

type SetSeverityDraft struct {
	Severity task.Severity
}

type SetSearch struct {
	Text string
}

type SetSeverityFilter struct {
	Filter task.SeverityFilter
}

type SetShowDone struct {
	Show bool
}

type ToggleShowDone struct{}

type SetFilters struct {
	Filters Filters
}

func (AddTask) Name() string             { return "add_task" }
func (GenerateTasks) Name() string       { return "generate_tasks" }
func (ToggleDone) Name() string          { return "toggle_done" }
func (SetTitleDraft) Name() string       { return "set_title_draft" }
func (SetDescriptionDraft) Name() string { return "set_description_draft" }
func (SetSeverityDraft) Name() string    { return "set_severity_draft" }
func (SetSearch) Name() string           { return "set_search" }
func (SetSeverityFilter) Name() string   { return "set_severity_filter" }
func (SetShowDone) Name() string         { return "set_show_done" }
func (ToggleShowDone) Name() string      { return "toggle_show_done" }
func (SetFilters) Name() string          { return "set_filters" }
