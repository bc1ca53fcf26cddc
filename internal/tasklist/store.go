package tasklist

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mrklmrrr/TODOIST/internal/task"
)

// Store is the single owner of the live State of a process. Dispatches are applied one at a
// time in arrival order; readers get copies.
type Store struct {
	mu        sync.RWMutex
	state     State
	env       Env
	log       logrus.FieldLogger
	observers []Observer

	// Batches take a ticket under mu and notify observers strictly in ticket order.
	applied    uint64
	notifyMu   sync.Mutex
	notifyCond *sync.Cond
	notified   uint64
}

// Change is one applied action with the states on either side of it.
type Change struct {
	Action Action
	Before State
	After  State
}

// Observer is told about every applied action, in apply order, after the state lock is
// released. Observe may read the Store but must not dispatch to it.
type Observer interface {
	Observe(ctx context.Context, c Change)
}

// Observe registers o for all later dispatches.
func (s *Store) Observe(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

func NewStore(env Env, logger logrus.FieldLogger) *Store {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	s := &Store{
		state: NewState(),
		env:   env.normalized(),
		log:   logger,
	}
	s.notifyCond = sync.NewCond(&s.notifyMu)
	return s
}

// Seed replaces the current drafts and filters, keeping tasks. Used to apply configured
// defaults before the first request.
func (s *Store) Seed(d Drafts, f Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Drafts = d
	s.state.Filters = f
}

func (s *Store) Dispatch(ctx context.Context, a Action) State {
	return s.DispatchAll(ctx, a)
}

// DispatchAll applies the actions as one batch; no other dispatch interleaves with it.
func (s *Store) DispatchAll(ctx context.Context, actions ...Action) State {
	s.mu.Lock()
	observers := s.observers
	changes := make([]Change, 0, len(actions))
	for _, a := range actions {
		prev := s.state
		s.state = Reduce(s.env, s.state, a)
		// Reduce never mutates its input, so prev and s.state can be handed out as is.
		changes = append(changes, Change{Action: a, Before: prev, After: s.state})
	}
	out := s.state.Clone()
	ticket := s.applied
	s.applied++
	s.mu.Unlock()

	s.waitTurn(ticket)
	defer s.finishTurn()

	for _, c := range changes {
		for _, o := range observers {
			o.Observe(ctx, c)
		}
		s.log.WithFields(logrus.Fields{
			"action": c.Action.Name(),
			"tasks":  len(c.After.Tasks),
			"added":  len(c.After.Tasks) - len(c.Before.Tasks),
		}).Debug("action_applied")
	}

	return out
}

func (s *Store) waitTurn(ticket uint64) {
	s.notifyMu.Lock()
	for s.notified != ticket {
		s.notifyCond.Wait()
	}
	s.notifyMu.Unlock()
}

func (s *Store) finishTurn() {
	s.notifyMu.Lock()
	s.notified++
	s.notifyMu.Unlock()
	s.notifyCond.Broadcast()
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// View is what a front end needs to draw one frame.
type View struct {
	State   State
	Visible []task.Task
	Total   int
	Done    int
}

func (s *Store) View() View {
	return NewView(s.Snapshot())
}

func NewView(st State) View {
	done := 0
	for _, t := range st.Tasks {
		if t.Done {
			done++
		}
	}
	return View{
		State:   st,
		Visible: st.Visible(),
		Total:   len(st.Tasks),
		Done:    done,
	}
}

// Empty reports whether the placeholder should be shown instead of the list.
func (v View) Empty() bool {
	return len(v.Visible) == 0
}
