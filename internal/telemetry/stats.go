package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Since          time.Time         `json:"since"`
	EventCounts    map[EventType]int `json:"event_counts"`
	TasksAdded     int               `json:"tasks_added"`
	TasksGenerated int               `json:"tasks_generated"`
	Completions    int               `json:"completions"`
	Reopened       int               `json:"reopened"`
	FilterChanges  int               `json:"filter_changes"`
	// AddedBySeverity counts hand-added tasks only.
	AddedBySeverity map[string]int `json:"added_by_severity"`
}

// CalculateStats summarises events recorded at or after since.
func CalculateStats(events []Event, since time.Time) Stats {
	stats := Stats{
		Since:           since,
		EventCounts:     make(map[EventType]int),
		AddedBySeverity: make(map[string]int),
	}

	for _, event := range events {
		if event.Timestamp.Before(since) {
			continue
		}
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			metadata = nil
		}

		switch event.Type {
		case EventTaskAdded:
			stats.TasksAdded++
			if sev, ok := metadata["severity"].(string); ok {
				stats.AddedBySeverity[sev]++
			}
		case EventTasksGenerated:
			// json numbers decode as float64
			if n, ok := metadata["count"].(float64); ok {
				stats.TasksGenerated += int(n)
			}
		case EventTaskCompleted:
			stats.Completions++
		case EventTaskReopened:
			stats.Reopened++
		case EventFiltersChanged:
			stats.FilterChanges++
		}
	}
	return stats
}
