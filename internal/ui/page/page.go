// Package page renders the to-do list as HTML.
package page

//go:generate templ generate

import (
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/mrklmrrr/TODOIST/internal/task"
	"github.com/mrklmrrr/TODOIST/internal/tasklist"
)

// EmptyText replaces the list when no task passes the filters.
const EmptyText = "No tasks match your filters."

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Data is everything the task list page shows.
type Data struct {
	Title           string
	Filters         tasklist.Filters
	Drafts          tasklist.Drafts
	Rows            []task.Row
	EmptyText       string
	VisibleCount    int
	TotalCount      int
	DoneCount       int
	VisibleLabel    string
	TotalLabel      string
	DoneLabel       string
	GenerateCount   int
	SeverityOptions []Option
	SeverityChoices []Option
}

type Settings struct {
	Title         string
	TimeFormat    string
	GenerateCount int
	HumanizeAges  bool
}

func NewData(v tasklist.View, s Settings, now time.Time) Data {
	rows := task.Rows(v.Visible, s.TimeFormat, now)
	if !s.HumanizeAges {
		for i := range rows {
			rows[i].Age = ""
		}
	}

	filterOpts := make([]Option, 0, len(task.SeverityFilters))
	for _, f := range task.SeverityFilters {
		filterOpts = append(filterOpts, Option{
			Value:    string(f),
			Label:    f.Label(),
			Selected: f == v.State.Filters.Severity,
		})
	}
	choices := make([]Option, 0, len(task.Severities))
	for _, sev := range task.Severities {
		choices = append(choices, Option{
			Value:    string(sev),
			Label:    sev.Label(),
			Selected: sev == v.State.Drafts.Severity,
		})
	}

	return Data{
		Title:           s.Title,
		Filters:         v.State.Filters,
		Drafts:          v.State.Drafts,
		Rows:            rows,
		EmptyText:       EmptyText,
		VisibleCount:    len(v.Visible),
		TotalCount:      v.Total,
		DoneCount:       v.Done,
		VisibleLabel:    humanize.Comma(int64(len(v.Visible))),
		TotalLabel:      humanize.Comma(int64(v.Total)),
		DoneLabel:       humanize.Comma(int64(v.Done)),
		GenerateCount:   s.GenerateCount,
		SeverityOptions: filterOpts,
		SeverityChoices: choices,
	}
}

func toggleURL(id string) templ.SafeURL {
	return templ.URL("/tasks/" + id + "/toggle")
}

func ageSuffix(age string) string {
	if age == "" {
		return ""
	}
	return ", " + age
}
