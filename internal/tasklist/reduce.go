package tasklist

import (
	"fmt"

	"github.com/mrklmrrr/TODOIST/internal/clock"
	"github.com/mrklmrrr/TODOIST/internal/task"
)

// MaxGenerateCount bounds a single bulk generation request.
const MaxGenerateCount = 100000

// Env supplies the impure inputs of Reduce.
type Env struct {
	IDs   task.IDGenerator
	Clock clock.Clock
}

func DefaultEnv() Env {
	return Env{IDs: task.UUIDGenerator{}, Clock: clock.RealClock{}}
}

func (e Env) normalized() Env {
	if e.IDs == nil {
		e.IDs = task.UUIDGenerator{}
	}
	if e.Clock == nil {
		e.Clock = clock.RealClock{}
	}
	return e
}

// Reduce applies a to s and returns the next state. s is never modified.
// Unknown actions and invalid input leave the state unchanged.
func Reduce(env Env, s State, a Action) State {
	env = env.normalized()
	next := s.Clone()

	switch a := a.(type) {
	case AddTask:
		if !task.ValidTitle(next.Drafts.Title) {
			return next
		}
		t := task.NewTask(env.IDs.NextID(), next.Drafts.Title, next.Drafts.Description, draftSeverity(next.Drafts), env.Clock.Now())
		next.Tasks = append(next.Tasks, t)
		next.Drafts.Title = ""
		next.Drafts.Description = ""

	case GenerateTasks:
		if a.Count <= 0 {
			return next
		}
		sev := draftSeverity(next.Drafts)
		next.Tasks = append(next.Tasks, generate(env, a.Count, sev)...)

	case ToggleDone:
		for i := range next.Tasks {
			if next.Tasks[i].ID == a.ID {
				next.Tasks[i].ToggleDone()
				break
			}
		}

	case SetTitleDraft:
		next.Drafts.Title = a.Title
	case SetDescriptionDraft:
		next.Drafts.Description = a.Description
	case SetSeverityDraft:
		if a.Severity.Valid() {
			next.Drafts.Severity = a.Severity
		}

	case SetSearch:
		next.Filters.Search = a.Text
	case SetSeverityFilter:
		if f, err := task.ParseSeverityFilter(string(a.Filter)); err == nil {
			next.Filters.Severity = f
		}
	case SetShowDone:
		next.Filters.ShowDone = a.Show
	case ToggleShowDone:
		next.Filters.ShowDone = !next.Filters.ShowDone
	case SetFilters:
		f := a.Filters
		sev, err := task.ParseSeverityFilter(string(f.Severity))
		if err != nil {
			sev = next.Filters.Severity
		}
		f.Severity = sev
		next.Filters = f
	}

	return next
}

func draftSeverity(d Drafts) task.Severity {
	if d.Severity.Valid() {
		return d.Severity
	}
	return task.SeverityMedium
}

func generate(env Env, count int, sev task.Severity) []task.Task {
	out := make([]task.Task, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, task.NewTask(
			env.IDs.NextID(),
			fmt.Sprintf("Task %d", i),
			fmt.Sprintf("Description for task %d", i),
			sev,
			env.Clock.Now(),
		))
	}
	return out
}
