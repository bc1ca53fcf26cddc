package telemetry

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/mrklmrrr/TODOIST/internal/clock"
)

// DefaultCapacity bounds how many events a MemoryRepository keeps.
const DefaultCapacity = 10000

// Repository stores telemetry events
type Repository interface {
	RecordEvent(eventType EventType, metadata EventMetadata) error
	GetEvents(since time.Time, eventTypes []EventType) ([]Event, error)
	Clear() error
}

// MemoryRepository stores events in memory. Once full, the oldest events are dropped.
type MemoryRepository struct {
	mu       sync.RWMutex
	events   []Event
	nextID   int
	capacity int
	clock    clock.Clock
}

func NewMemoryRepository(c clock.Clock, capacity int) *MemoryRepository {
	if c == nil {
		c = clock.RealClock{}
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryRepository{
		events:   make([]Event, 0),
		nextID:   1,
		capacity: capacity,
		clock:    c,
	}
}

func (r *MemoryRepository) RecordEvent(eventType EventType, metadata EventMetadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		ID:        r.nextID,
		Type:      eventType,
		Timestamp: now,
		Metadata:  string(metadataJSON),
	})
	r.nextID++

	if over := len(r.events) - r.capacity; over > 0 {
		r.events = append(r.events[:0:0], r.events[over:]...)
	}
	return nil
}

func (r *MemoryRepository) GetEvents(since time.Time, eventTypes []EventType) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeFilter := make(map[EventType]bool)
	for _, t := range eventTypes {
		typeFilter[t] = true
	}

	result := make([]Event, 0)
	for _, event := range r.events {
		if event.Timestamp.Before(since) {
			continue
		}
		if len(eventTypes) > 0 && !typeFilter[event.Type] {
			continue
		}
		result = append(result, event)
	}
	return result, nil
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]Event, 0)
	r.nextID = 1
	return nil
}
