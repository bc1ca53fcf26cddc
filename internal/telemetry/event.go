// Package telemetry keeps an in-memory activity log of task list changes and derives usage
// stats from it.
package telemetry

import "time"

type EventType string

const (
	EventTaskAdded      EventType = "task_added"
	EventTasksGenerated EventType = "tasks_generated"
	EventTaskCompleted  EventType = "task_completed"
	EventTaskReopened   EventType = "task_reopened"
	EventFiltersChanged EventType = "filters_changed"
)

// EventTypes lists every known event type.
var EventTypes = []EventType{
	EventTaskAdded,
	EventTasksGenerated,
	EventTaskCompleted,
	EventTaskReopened,
	EventFiltersChanged,
}

func ParseEventType(s string) (EventType, bool) {
	for _, t := range EventTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
