// Package mutate owns every change to the committed board. A mutation is
// applied optimistically so the UI feels instantaneous, then confirmed
// against the authoritative store; the coordinator commits the server's
// answer or rolls the board back to the snapshot taken before the change.
package mutate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/tavla/internal/board"
)

// DefaultConfirmTimeout bounds every confirmation call.
const DefaultConfirmTimeout = 10 * time.Second

// Reconcile folds the server-confirmed entity into the board after a
// successful confirmation. The server's answer may differ from the
// optimistic guess (server-assigned IDs, computed fields) and wins.
type Reconcile func(b *board.Board)

// Mutation describes one board change.
//
// Apply performs the optimistic local change. Confirm issues the
// confirmation request and returns the reconcile step to run on success;
// a nil Confirm makes the mutation local-only and commits it immediately
// (used for forced reverts that never touched the committed server state).
type Mutation struct {
	Name    string
	Apply   func(b *board.Board)
	Confirm func(ctx context.Context) (Reconcile, error)
}

// recordState tracks a mutation record through its lifecycle.
type recordState int

const (
	recordPending recordState = iota
	recordCommitted
	recordRolledBack
)

// mutationRecord is the commit/rollback unit: the pre-mutation snapshot,
// the in-flight state, and the outcome. It never leaves the coordinator.
type mutationRecord struct {
	name   string
	before *board.Board
	state  recordState
	err    error
}

// Coordinator serializes board writes and enforces the optimistic
// commit/rollback discipline. It is the only component that mutates the
// committed board; everything else reads snapshots.
type Coordinator struct {
	mu      sync.Mutex
	board   *board.Board
	timeout time.Duration
	log     *slog.Logger
}

// NewCoordinator creates a coordinator over the given board. A zero timeout
// falls back to DefaultConfirmTimeout.
func NewCoordinator(b *board.Board, timeout time.Duration, log *slog.Logger) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{board: b, timeout: timeout, log: log}
}

// Snapshot returns a deep copy of the committed board for rendering and
// predicate evaluation.
func (c *Coordinator) Snapshot() *board.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.Clone()
}

// ResetBoard replaces the committed board wholesale, used after a full
// refetch from the store.
func (c *Coordinator) ResetBoard(b *board.Board) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.board = b
}

// Apply runs one mutation through the optimistic cycle:
//
//  1. snapshot the board and apply the change locally
//  2. issue the confirmation request under a bounded timeout
//  3. on success, reconcile the server's entity into the board
//  4. on failure or timeout, restore the snapshot
//
// A timeout is treated as a failure even though the remote operation may
// have been applied; the board converges on the next fetch.
func (c *Coordinator) Apply(ctx context.Context, m Mutation) error {
	c.mu.Lock()
	rec := &mutationRecord{name: m.Name, before: c.board.Clone(), state: recordPending}
	m.Apply(c.board)
	c.mu.Unlock()

	if m.Confirm == nil {
		rec.state = recordCommitted
		c.log.Debug("local mutation committed", "mutation", m.Name)
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	reconcile, err := m.Confirm(cctx)
	if err != nil {
		c.mu.Lock()
		c.board.Restore(rec.before)
		c.mu.Unlock()
		rec.state = recordRolledBack
		rec.err = err
		if errors.Is(err, context.DeadlineExceeded) {
			c.log.Warn("confirmation timed out, rolled back", "mutation", m.Name, "elapsed", time.Since(started))
			return fmt.Errorf("%s: %w", m.Name, ErrConfirmTimeout)
		}
		c.log.Warn("confirmation failed, rolled back", "mutation", m.Name, "error", err)
		return fmt.Errorf("%s: %w", m.Name, err)
	}

	c.mu.Lock()
	if reconcile != nil {
		reconcile(c.board)
	}
	c.mu.Unlock()
	rec.state = recordCommitted
	c.log.Debug("mutation committed", "mutation", m.Name, "elapsed", time.Since(started))
	return nil
}
