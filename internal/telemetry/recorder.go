package telemetry

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mrklmrrr/TODOIST/internal/tasklist"
)

// Recorder turns applied task list actions into events. Draft edits and no-op actions
// are not recorded.
type Recorder struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewRecorder(repo Repository, logger logrus.FieldLogger) *Recorder {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Recorder{repo: repo, log: logger}
}

func (r *Recorder) Observe(_ context.Context, c tasklist.Change) {
	eventType, metadata, ok := eventFor(c)
	if !ok {
		return
	}
	if err := r.repo.RecordEvent(eventType, metadata); err != nil {
		r.log.WithError(err).WithField("event", eventType).Warn("telemetry_record_failed")
	}
}

func eventFor(c tasklist.Change) (EventType, EventMetadata, bool) {
	added := len(c.After.Tasks) - len(c.Before.Tasks)

	switch a := c.Action.(type) {
	case tasklist.AddTask:
		if added <= 0 {
			return "", nil, false
		}
		t := c.After.Tasks[len(c.After.Tasks)-1]
		return EventTaskAdded, EventMetadata{"id": t.ID, "severity": string(t.Severity)}, true

	case tasklist.GenerateTasks:
		if added <= 0 {
			return "", nil, false
		}
		return EventTasksGenerated, EventMetadata{"count": added}, true

	case tasklist.ToggleDone:
		t, found := c.After.Find(a.ID)
		if !found {
			return "", nil, false
		}
		meta := EventMetadata{"id": t.ID, "severity": string(t.Severity)}
		if t.Done {
			return EventTaskCompleted, meta, true
		}
		return EventTaskReopened, meta, true

	case tasklist.SetSearch, tasklist.SetSeverityFilter, tasklist.SetShowDone,
		tasklist.ToggleShowDone, tasklist.SetFilters:
		if c.Before.Filters == c.After.Filters {
			return "", nil, false
		}
		f := c.After.Filters
		return EventFiltersChanged, EventMetadata{
			"search":    f.Search,
			"severity":  string(f.Severity),
			"show_done": f.ShowDone,
		}, true
	}
	return "", nil, false
}
