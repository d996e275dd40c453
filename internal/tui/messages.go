package tui

import (
	"github.com/thenoetrevino/tavla/internal/board"
	"github.com/thenoetrevino/tavla/internal/tui/notifications"
)

// cachedBoardMsg delivers the cached snapshot for an instant first paint
// while the authoritative fetch is still in flight.
type cachedBoardMsg struct {
	snapshot *board.Board
}

// boardLoadedMsg delivers the initial or refetched board.
type boardLoadedMsg struct {
	snapshot  *board.Board
	fromCache bool
}

// resultMsg delivers a fresh snapshot after any mutation, with an optional
// transient notification.
type resultMsg struct {
	snapshot *board.Board
	note     string
	level    notifications.Severity
}

// errMsg reports a failed operation. The snapshot reflects the rolled-back
// committed board.
type errMsg struct {
	err      error
	snapshot *board.Board
}

// evidenceRequiredMsg signals that the transition gate blocked a move and
// the evidence surface must open for the task.
type evidenceRequiredMsg struct {
	taskID string
}

// attachmentDoneMsg reports an attachment upload, and whether it committed
// a deferred move.
type attachmentDoneMsg struct {
	taskID       string
	movedPending bool
	snapshot     *board.Board
}

// dismissedMsg reports the evidence surface closing, and whether a pending
// move was abandoned (forcing the task back to its origin group).
type dismissedMsg struct {
	abandoned bool
	snapshot  *board.Board
}
