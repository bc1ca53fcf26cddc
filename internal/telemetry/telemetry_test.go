package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrklmrrr/TODOIST/internal/clock"
	"github.com/mrklmrrr/TODOIST/internal/task"
	"github.com/mrklmrrr/TODOIST/internal/tasklist"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newObservedStore(t *testing.T) (*tasklist.Store, *MemoryRepository) {
	t.Helper()
	clk := clock.NewSteppingClock(t0, time.Second)
	repo := NewMemoryRepository(clk, 0)
	store := tasklist.NewStore(tasklist.Env{IDs: task.NewCounterGenerator("task"), Clock: clk}, nil)
	store.Observe(NewRecorder(repo, nil))
	return store, repo
}

func TestRecorder_RecordsMeaningfulChanges(t *testing.T) {
	store, repo := newObservedStore(t)
	ctx := context.Background()

	store.DispatchAll(ctx,
		tasklist.SetTitleDraft{Title: "Buy milk"},
		tasklist.SetSeverityDraft{Severity: task.SeverityLow},
		tasklist.AddTask{},
		tasklist.AddTask{}, // blank title now, no event
	)
	store.Dispatch(ctx, tasklist.GenerateTasks{Count: 3})
	store.Dispatch(ctx, tasklist.ToggleDone{ID: "task_1"})
	store.Dispatch(ctx, tasklist.ToggleDone{ID: "task_1"})
	store.Dispatch(ctx, tasklist.ToggleDone{ID: "missing"})
	store.Dispatch(ctx, tasklist.SetSearch{Text: "milk"})
	store.Dispatch(ctx, tasklist.SetSearch{Text: "milk"}) // unchanged

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []EventType{
		EventTaskAdded,
		EventTasksGenerated,
		EventTaskCompleted,
		EventTaskReopened,
		EventFiltersChanged,
	}, types)
	assert.JSONEq(t, `{"id":"task_1","severity":"low"}`, events[0].Metadata)
	assert.JSONEq(t, `{"count":3}`, events[1].Metadata)

	stats := CalculateStats(events, time.Time{})
	assert.Equal(t, 1, stats.TasksAdded)
	assert.Equal(t, 3, stats.TasksGenerated)
	assert.Equal(t, 1, stats.Completions)
	assert.Equal(t, 1, stats.Reopened)
	assert.Equal(t, 1, stats.FilterChanges)
	assert.Equal(t, 1, stats.AddedBySeverity["low"])
}

func TestMemoryRepository_FiltersAndCapacity(t *testing.T) {
	clk := clock.NewFakeClock(t0)
	repo := NewMemoryRepository(clk, 3)

	require.NoError(t, repo.RecordEvent(EventTaskAdded, nil))
	clk.Advance(time.Hour)
	require.NoError(t, repo.RecordEvent(EventTaskCompleted, nil))
	require.NoError(t, repo.RecordEvent(EventTaskAdded, nil))
	require.NoError(t, repo.RecordEvent(EventFiltersChanged, nil))

	all, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[0].ID)

	added, err := repo.GetEvents(time.Time{}, []EventType{EventTaskAdded})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, 3, added[0].ID)

	later, err := repo.GetEvents(t0.Add(2*time.Hour), nil)
	require.NoError(t, err)
	assert.Empty(t, later)

	require.NoError(t, repo.Clear())
	all, err = repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestParseEventType(t *testing.T) {
	et, ok := ParseEventType("task_completed")
	assert.True(t, ok)
	assert.Equal(t, EventTaskCompleted, et)

	_, ok = ParseEventType("zombie_spawned")
	assert.False(t, ok)
}
