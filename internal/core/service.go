package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/endpoint"
	"github.com/agentdeck/agentdeck/internal/eventbus"
	"github.com/agentdeck/agentdeck/internal/models"
	"github.com/agentdeck/agentdeck/internal/upstream"
)

// AgentService owns the submission and probe flows. Errors are caught
// here, converted to the last-error field, and never escape into the UI
// tree.
type AgentService struct {
	client   *upstream.Client
	config   *config.Config
	state    *AgentState
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewAgentService resolves the endpoint through the provider chain and
// persists the resolved value back to the durable store.
func NewAgentService(cfg *config.Config, endpointOverride string, eb *eventbus.EventBus) (*AgentService, error) {
	state := NewAgentState()
	ctx, cancel := context.WithCancel(context.Background())

	service := &AgentService{
		client:   upstream.NewClient(),
		config:   cfg,
		state:    state,
		eventBus: eb,
		ctx:      ctx,
		cancel:   cancel,
	}

	url := endpoint.ResolveAndPersist(endpointOverride, cfg)
	state.SetEndpoint(url)

	service.addWelcomeNotices(url)

	return service, nil
}

// Start runs the core logic in a goroutine
func (s *AgentService) Start() {
	// Send initial state to UI immediately
	s.pushStateToUI()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.eventLoop()
	}()
}

// Stop cancels in-flight requests and waits for the event loop and every
// worker goroutine to drain, so the bus channels can be closed safely
// afterwards.
func (s *AgentService) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *AgentService) eventLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *AgentService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitRequestEvent:
		s.submit(e.Text, e.ImagePath)
	case eventbus.ProbeRequestEvent:
		s.probe()
	case eventbus.SetEndpointEvent:
		s.setEndpoint(e.URL)
	}
}

// submit issues a single-attempt submission. The request runs in its own
// goroutine; a result is applied only if no newer submission was issued in
// the meantime.
func (s *AgentService) submit(text, imagePath string) {
	sub := upstream.Submission{
		Text:  text,
		Token: s.config.Token,
	}

	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			s.state.SetError(fmt.Errorf("failed to read image: %w", err))
			s.pushStateToUI()
			return
		}
		sub.Image = data
		sub.ImageName = filepath.Base(imagePath)
	}

	generation := s.state.BeginSubmission()
	s.pushStateToUI()

	endpointURL := s.state.Endpoint()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		result, err := s.client.Submit(s.ctx, endpointURL, sub)
		if s.state.ApplyResult(generation, result.AnswerMarkdown, toModelAttachments(result.Files), err) {
			s.pushStateToUI()
		}
	}()
}

// probe runs a reachability check. Status transitions running -> ok|fail;
// the response body is never inspected.
func (s *AgentService) probe() {
	s.state.BeginProbe()
	s.pushStateToUI()

	endpointURL := s.state.Endpoint()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.client.Probe(s.ctx, endpointURL)
		s.state.FinishProbe(err)
		s.pushStateToUI()
	}()
}

// setEndpoint validates, applies, and persists an explicit endpoint edit.
func (s *AgentService) setEndpoint(url string) {
	if !endpoint.IsValid(url) {
		s.state.SetError(fmt.Errorf("invalid endpoint %q: must start with http:// or https://", url))
		s.pushStateToUI()
		return
	}

	s.state.SetEndpoint(url)
	s.state.SetError(nil)
	s.config.Endpoint = url
	if err := s.config.Save(); err != nil {
		s.state.SetError(fmt.Errorf("failed to persist endpoint: %w", err))
	} else {
		s.state.AddNotice(fmt.Sprintf("Endpoint set to %s", url))
	}
	s.pushStateToUI()
}

func (s *AgentService) pushStateToUI() {
	snapshot := s.state.Snapshot()

	// A failed send means the bus is saturated or shutting down. Dropping
	// is safe: every push is a full snapshot, so the next one carries the
	// complete state. Writing to stdout here would corrupt the terminal
	// the UI owns.
	_ = s.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Endpoint:       snapshot.Endpoint,
		AnswerMarkdown: snapshot.AnswerMarkdown,
		Attachments:    snapshot.Attachments,
		PingStatus:     snapshot.PingStatus,
		IsProcessing:   snapshot.Processing,
		Error:          snapshot.LastError,
		Notices:        snapshot.Notices,
	})
}

// IsReady reports whether submissions can be attempted against the
// current endpoint.
func (s *AgentService) IsReady() bool {
	url := s.state.Endpoint()
	return endpoint.IsValid(url) && url != endpoint.Placeholder
}

func (s *AgentService) addWelcomeNotices(url string) {
	s.state.AddNotice("-- AGENTDECK --")

	if url == endpoint.Placeholder {
		s.state.AddNotice("Endpoint: NOT CONFIGURED")
		s.state.AddNotice("Configure an endpoint to start:")
		s.state.AddNotice("• Run: agentdeck endpoint set <url>")
		s.state.AddNotice("• Or type: /endpoint <url>")
	} else if !endpoint.IsValid(url) {
		s.state.AddNotice(fmt.Sprintf("Endpoint: %s [INVALID]", url))
	} else {
		s.state.AddNotice(fmt.Sprintf("Endpoint: %s [OK]", url))
		s.state.AddNotice("Type your question and press Enter")
	}

	s.state.AddNotice("Commands: /ping, /endpoint <url>, /image <path>")
	s.state.AddNotice("Controls: Ctrl+C or Esc to exit")
	s.state.AddNotice("")
}

func toModelAttachments(files []upstream.Attachment) []models.Attachment {
	out := make([]models.Attachment, len(files))
	for i, f := range files {
		out[i] = models.Attachment{Name: f.Name, URL: f.URL}
	}
	return out
}
