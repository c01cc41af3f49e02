package app

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/core"
	"github.com/agentdeck/agentdeck/internal/dispatcher"
	"github.com/agentdeck/agentdeck/internal/eventbus"
	"github.com/agentdeck/agentdeck/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.AgentService
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

// NewApplication wires config, bus, service, and UI model together.
// endpointOverride takes priority over every configured source.
func NewApplication(endpointOverride string) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return nil, err
	}

	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)

	service, err := core.NewAgentService(cfg, endpointOverride, eb)
	if err != nil {
		log.Printf("Failed to initialize agent service: %v", err)
		return nil, err
	}

	model := &AppModel{
		appModel:   createInitialAppModel(),
		dispatcher: disp,
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	// Run UI
	p := tea.NewProgram(app.model)
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}

func createInitialAppModel() models.AppModel {
	// Notices and endpoint arrive from core as the single source of truth
	return models.AppModel{
		Status:      "Ready",
		Attachments: make([]models.Attachment, 0),
	}
}
