// Package pending tracks relocations blocked by the transition gate until
// evidence is supplied or the move is abandoned.
//
// Each tracked move walks an explicit state machine:
//
//	Idle -> AwaitingEvidence -> (Committed | Abandoned) -> Idle
//
// Idle means no entry exists for the task. At most one pending move may exist
// per task; a second blocked attempt is rejected, never silently overwritten.
package pending

import (
	"sync"
	"time"

	"github.com/thenoetrevino/tavla/internal/models"
)

// State is the lifecycle state of a pending move.
type State int

const (
	// StateAwaitingEvidence means the move is blocked until an attachment
	// transitions the task's attachment collection from empty to non-empty.
	StateAwaitingEvidence State = iota

	// StateCommitted means evidence arrived and the deferred relocation was
	// handed back to the coordinator.
	StateCommitted

	// StateAbandoned means the evidence surface was dismissed without an
	// attachment and the task reverts to its origin group.
	StateAbandoned
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateAwaitingEvidence:
		return "awaiting_evidence"
	case StateCommitted:
		return "committed"
	case StateAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Move records one relocation deferred pending evidence. Snapshot is the
// task as it was at move time; the abandon path restores its order index.
type Move struct {
	TaskID             string
	OriginGroupID      string
	DestinationGroupID string
	Snapshot           *models.Task
	State              State
	CreatedAt          time.Time
}

// Tracker holds the pending moves for one client session, keyed by task.
// Bubble Tea commands run on their own goroutines, so access is locked.
type Tracker struct {
	mu    sync.Mutex
	moves map[string]*Move
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{moves: make(map[string]*Move)}
}

// copy returns an independent copy; callers can never reach tracker-owned
// state through it.
func (m *Move) copy() *Move {
	c := *m
	c.Snapshot = m.Snapshot.Clone()
	return &c
}

// Begin transitions Idle -> AwaitingEvidence for the task, recording origin,
// destination, and a snapshot of the task at move time. Returns
// ErrMoveAlreadyPending if a move is already outstanding for the task.
func (tr *Tracker) Begin(task *models.Task, originGroupID, destinationGroupID string) (*Move, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, exists := tr.moves[task.ID]; exists {
		return nil, ErrMoveAlreadyPending
	}
	m := &Move{
		TaskID:             task.ID,
		OriginGroupID:      originGroupID,
		DestinationGroupID: destinationGroupID,
		Snapshot:           task.Clone(),
		State:              StateAwaitingEvidence,
		CreatedAt:          time.Now(),
	}
	tr.moves[task.ID] = m
	return m.copy(), nil
}

// Get returns a copy of the outstanding move for the task, if any.
func (tr *Tracker) Get(taskID string) (*Move, bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	m, ok := tr.moves[taskID]
	if !ok {
		return nil, false
	}
	return m.copy(), true
}

// Commit transitions AwaitingEvidence -> Committed and clears the entry.
// Returns ErrNoPendingMove if nothing is outstanding for the task.
func (tr *Tracker) Commit(taskID string) (*Move, error) {
	return tr.finish(taskID, StateCommitted)
}

// Abandon transitions AwaitingEvidence -> Abandoned and clears the entry.
// Returns ErrNoPendingMove if nothing is outstanding for the task.
func (tr *Tracker) Abandon(taskID string) (*Move, error) {
	return tr.finish(taskID, StateAbandoned)
}

func (tr *Tracker) finish(taskID string, to State) (*Move, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	m, ok := tr.moves[taskID]
	if !ok {
		return nil, ErrNoPendingMove
	}
	m.State = to
	delete(tr.moves, taskID)
	return m, nil
}
