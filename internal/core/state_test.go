package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentdeck/agentdeck/internal/models"
)

func TestStaleSubmissionResultIsDropped(t *testing.T) {
	state := NewAgentState()

	first := state.BeginSubmission()
	second := state.BeginSubmission()

	// The superseded request finishes last but must not win
	applied := state.ApplyResult(second, "fresh answer", nil, nil)
	assert.True(t, applied)
	applied = state.ApplyResult(first, "stale answer", nil, nil)
	assert.False(t, applied)

	snap := state.Snapshot()
	assert.Equal(t, "fresh answer", snap.AnswerMarkdown)
	assert.False(t, snap.Processing)
}

func TestApplyResultReplacesPriorResult(t *testing.T) {
	state := NewAgentState()

	gen := state.BeginSubmission()
	state.ApplyResult(gen, "first", []models.Attachment{{Name: "a", URL: "u"}}, nil)

	gen = state.BeginSubmission()
	state.ApplyResult(gen, "second", nil, nil)

	snap := state.Snapshot()
	assert.Equal(t, "second", snap.AnswerMarkdown)
	assert.Empty(t, snap.Attachments, "prior attachments must not survive a new result")
}

func TestApplyResultErrorEmptiesResult(t *testing.T) {
	state := NewAgentState()

	gen := state.BeginSubmission()
	state.ApplyResult(gen, "good", []models.Attachment{{Name: "a", URL: "u"}}, nil)

	gen = state.BeginSubmission()
	state.ApplyResult(gen, "", nil, errors.New("request failed"))

	snap := state.Snapshot()
	assert.Empty(t, snap.AnswerMarkdown)
	assert.Empty(t, snap.Attachments)
	assert.EqualError(t, snap.LastError, "request failed")
}

func TestBeginSubmissionClearsError(t *testing.T) {
	state := NewAgentState()

	gen := state.BeginSubmission()
	state.ApplyResult(gen, "", nil, errors.New("boom"))

	state.BeginSubmission()
	snap := state.Snapshot()
	assert.NoError(t, snap.LastError)
	assert.True(t, snap.Processing)
}

func TestProbeTransitions(t *testing.T) {
	state := NewAgentState()
	assert.Equal(t, models.PingIdle, state.Snapshot().PingStatus)

	state.BeginProbe()
	assert.Equal(t, models.PingRunning, state.Snapshot().PingStatus)

	state.FinishProbe(nil)
	assert.Equal(t, models.PingOK, state.Snapshot().PingStatus)

	// Each new probe resets to running first
	state.BeginProbe()
	assert.Equal(t, models.PingRunning, state.Snapshot().PingStatus)

	state.FinishProbe(errors.New("upstream returned HTTP 500: boom"))
	snap := state.Snapshot()
	assert.Equal(t, models.PingFail, snap.PingStatus)
	assert.Contains(t, snap.LastError.Error(), "500")
}
