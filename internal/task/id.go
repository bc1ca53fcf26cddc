package task

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out task identifiers that are never reused.
type IDGenerator interface {
	NextID() string
}

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}

// CounterGenerator issues "<prefix>_1", "<prefix>_2", ... and is safe for concurrent use.
type CounterGenerator struct {
	Prefix string
	next   atomic.Int64
}

func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{Prefix: prefix}
}

func (g *CounterGenerator) NextID() string {
	n := g.next.Add(1)
	if g.Prefix == "" {
		return strconv.FormatInt(n, 10)
	}
	return g.Prefix + "_" + strconv.FormatInt(n, 10)
}

// Reset restarts numbering; only meant for tests.
func (g *CounterGenerator) Reset() {
	g.next.Store(0)
}
