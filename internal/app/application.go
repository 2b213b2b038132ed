package app

import (
	"log"

	pbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apocrypha/forge/internal/catalog"
	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/core"
	"github.com/apocrypha/forge/internal/dispatcher"
	"github.com/apocrypha/forge/internal/eventbus"
	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/registry"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ForgeService
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)

	service, err := core.NewForgeService(cfg, eb)
	if err != nil {
		log.Printf("Failed to initialize forge service: %v", err)
		return nil, err
	}

	model := &AppModel{
		appModel:   createInitialAppModel(service),
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

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}

func createInitialAppModel(service *core.ForgeService) models.AppModel {
	input := textinput.New()
	input.Placeholder = "Describe your idea..."
	input.Focus()

	editor := textarea.New()
	editor.SetHeight(6)
	editor.ShowLineNumbers = false

	titles := make(map[registry.Kind]string)
	hints := make(map[registry.Kind]string)
	if entries, err := catalog.Load(); err == nil {
		for id, e := range entries {
			titles[id] = e.Title
			hints[id] = e.Hint
		}
	}

	// Board state starts empty; the core pushes the full snapshot on start.
	return models.AppModel{
		Messages:     make([]models.Message, 0),
		Input:        input,
		Editor:       editor,
		Bar:          pbar.New(pbar.WithDefaultGradient()),
		Titles:       titles,
		Hints:        hints,
		Focus:        models.PaneChat,
		Screen:       models.ScreenForge,
		Status:       "Ready",
		ServiceReady: service.IsReady(),
	}
}
