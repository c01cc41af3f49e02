package core

import (
	"sync"

	"github.com/agentdeck/agentdeck/internal/models"
)

// Snapshot is an immutable copy of the agent state for the UI.
type Snapshot struct {
	Endpoint       string
	AnswerMarkdown string
	Attachments    []models.Attachment
	PingStatus     models.PingStatus
	Processing     bool
	LastError      error
	Notices        []string
}

// AgentState holds the shared result/status fields. Each new successful
// submission replaces the prior result entirely; errors replace the prior
// error. A generation counter identifies the most recently issued
// submission so a slower, superseded request cannot overwrite a newer
// result.
type AgentState struct {
	mu             sync.RWMutex
	endpoint       string
	answerMarkdown string
	attachments    []models.Attachment
	pingStatus     models.PingStatus
	lastError      error
	processing     bool
	generation     uint64
	notices        []string
}

func NewAgentState() *AgentState {
	return &AgentState{
		pingStatus:  models.PingIdle,
		attachments: make([]models.Attachment, 0),
	}
}

func (as *AgentState) Snapshot() Snapshot {
	as.mu.RLock()
	defer as.mu.RUnlock()

	attachments := make([]models.Attachment, len(as.attachments))
	copy(attachments, as.attachments)
	notices := make([]string, len(as.notices))
	copy(notices, as.notices)

	return Snapshot{
		Endpoint:       as.endpoint,
		AnswerMarkdown: as.answerMarkdown,
		Attachments:    attachments,
		PingStatus:     as.pingStatus,
		Processing:     as.processing,
		LastError:      as.lastError,
		Notices:        notices,
	}
}

func (as *AgentState) SetEndpoint(url string) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.endpoint = url
}

func (as *AgentState) Endpoint() string {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.endpoint
}

// AddNotice appends a program notice (welcome text, warnings).
func (as *AgentState) AddNotice(notice string) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.notices = append(as.notices, notice)
}

// SetError records an error outside the submission path (endpoint edits).
func (as *AgentState) SetError(err error) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.lastError = err
}

// BeginSubmission atomically marks a new in-flight submission and returns
// its generation. Issuing a new submission supersedes any in-flight one.
func (as *AgentState) BeginSubmission() uint64 {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.generation++
	as.processing = true
	as.lastError = nil
	return as.generation
}

// ApplyResult installs a submission outcome if it belongs to the most
// recently issued generation. Stale results are discarded and the method
// reports whether anything changed.
func (as *AgentState) ApplyResult(generation uint64, answerMarkdown string, attachments []models.Attachment, err error) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	if generation != as.generation {
		return false
	}

	as.processing = false
	if err != nil {
		as.lastError = err
		as.answerMarkdown = ""
		as.attachments = make([]models.Attachment, 0)
		return true
	}

	as.lastError = nil
	as.answerMarkdown = answerMarkdown
	if attachments == nil {
		attachments = make([]models.Attachment, 0)
	}
	as.attachments = attachments
	return true
}

// BeginProbe resets the ping state to running.
func (as *AgentState) BeginProbe() {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.pingStatus = models.PingRunning
}

// FinishProbe records the probe outcome. Probes follow last-write-wins.
func (as *AgentState) FinishProbe(err error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	if err != nil {
		as.pingStatus = models.PingFail
		as.lastError = err
		return
	}
	as.pingStatus = models.PingOK
	as.lastError = nil
}
