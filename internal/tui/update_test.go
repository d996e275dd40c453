package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/tavla/internal/models"
	"github.com/thenoetrevino/tavla/internal/mutate"
	"github.com/thenoetrevino/tavla/internal/pending"
	"github.com/thenoetrevino/tavla/internal/services/boardops"
	"github.com/thenoetrevino/tavla/internal/tui/notifications"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		severity notifications.Severity
	}{
		{"permission denied", boardops.ErrPermissionDenied, notifications.Error},
		{"move already pending", pending.ErrMoveAlreadyPending, notifications.Warning},
		{"invalid target", boardops.ErrInvalidTarget, notifications.Error},
		{"already in group", boardops.ErrTaskAlreadyInGroup, notifications.Info},
		{"confirm timeout", mutate.ErrConfirmTimeout, notifications.Error},
		{"task missing", models.ErrTaskNotFound, notifications.Error},
		{"unknown error", errors.New("weird"), notifications.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, text := classifyError(tt.err)
			assert.Equal(t, tt.severity, severity)
			assert.NotEmpty(t, text)
		})
	}
}

func TestNextPriority_CyclesAllLevels(t *testing.T) {
	assert.Equal(t, models.PriorityMedium, nextPriority(models.PriorityHigh))
	assert.Equal(t, models.PriorityNormal, nextPriority(models.PriorityMedium))
	assert.Equal(t, models.PriorityLow, nextPriority(models.PriorityNormal))
	assert.Equal(t, models.PriorityHigh, nextPriority(models.PriorityLow))
	assert.Equal(t, models.PriorityHigh, nextPriority(""))
}

func TestClassifyError_WrappedErrorsStillMatch(t *testing.T) {
	wrapped := errors.Join(errors.New("relocate task"), mutate.ErrConfirmTimeout)
	severity, text := classifyError(wrapped)
	assert.Equal(t, notifications.Error, severity)
	assert.Contains(t, text, "undone")
}
