// Package policy implements the transition gate: entering the in-progress or
// complete group requires evidence (an attachment) on the task.
package policy

import "github.com/thenoetrevino/tavla/internal/models"

// Gate evaluates whether a destination group demands evidence. The gated
// group IDs come from the board's designated-group resolution; an empty ID
// means that designation is absent on this board and never gates.
type Gate struct {
	InProgressGroupID string
	CompleteGroupID   string
}

// RequiresEvidence reports whether moving the task into the destination group
// requires an attachment that is not yet present.
//
// Pure function with no side effects; safe to call speculatively before
// committing to a move. A task that already carries an attachment passes the
// gate permanently.
func (g Gate) RequiresEvidence(destinationGroupID string, task *models.Task) bool {
	if task.HasEvidence() {
		return false
	}
	if destinationGroupID == "" {
		return false
	}
	return destinationGroupID == g.InProgressGroupID || destinationGroupID == g.CompleteGroupID
}
