package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentdeck/agentdeck/internal/eventbus"
	"github.com/agentdeck/agentdeck/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "enter":
		input := strings.TrimSpace(appModel.Input)
		if input == "" {
			return nil
		}
		appModel.Input = ""
		handleInputLine(appModel, input, eb)
	case "backspace":
		if len(appModel.Input) > 0 {
			appModel.Input = appModel.Input[:len(appModel.Input)-1]
		}
	default:
		if len(keyMsg.String()) == 1 {
			appModel.Input += keyMsg.String()
		}
	}
	return nil
}

// handleInputLine routes a submitted input line: slash commands stay local
// or become dedicated events, anything else is a submission.
func handleInputLine(appModel *models.AppModel, input string, eb *eventbus.EventBus) {
	switch {
	case input == "/ping":
		sendToCore(appModel, eb, eventbus.ProbeRequestEvent{})

	case strings.HasPrefix(input, "/endpoint "):
		url := strings.TrimSpace(strings.TrimPrefix(input, "/endpoint "))
		sendToCore(appModel, eb, eventbus.SetEndpointEvent{URL: url})

	case strings.HasPrefix(input, "/image "):
		path := strings.TrimSpace(strings.TrimPrefix(input, "/image "))
		appModel.PendingImage = path
		appModel.Status = "Image staged: " + path

	default:
		sendToCore(appModel, eb, eventbus.SubmitRequestEvent{
			Text:      input,
			ImagePath: appModel.PendingImage,
		})
		appModel.PendingImage = ""
	}
}

func sendToCore(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) {
	if err := eb.SendToCore(event); err != nil {
		appModel.Status = "Error sending event: " + err.Error()
	}
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		// Snapshot replaces UI state entirely
		appModel.Endpoint = event.Endpoint
		appModel.AnswerMarkdown = event.AnswerMarkdown
		appModel.Attachments = event.Attachments
		appModel.PingStatus = event.PingStatus
		appModel.Loading = event.IsProcessing
		appModel.Notices = event.Notices

		// Update status based on core state
		if event.Error != nil {
			appModel.Status = "Error: " + event.Error.Error()
		} else if event.IsProcessing {
			appModel.Status = "Processing"
		} else if event.PingStatus == models.PingRunning {
			appModel.Status = "Pinging"
		} else {
			appModel.Status = "Ready"
		}
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading || appModel.PingStatus == models.PingRunning {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
