package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/update"
	"github.com/apocrypha/forge/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		textinput.Blink,
		m.dispatcher.ListenForUIEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}

	// Handle other events through the event bus
	eventBus := m.dispatcher.GetEventBus()
	serviceReady := m.appModel.ServiceReady
	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus, serviceReady)

	return m, cmd
}

func (m *AppModel) View() string {
	if m.appModel.Screen == models.ScreenDetail {
		return components.RenderIdeaDetail(m.appModel.Detail, m.appModel.DetailNote)
	}

	paneWidth := m.appModel.Width / 2
	if paneWidth <= 0 {
		paneWidth = 60
	}

	chat := components.RenderMessages(m.appModel.Messages) +
		components.RenderInput(m.appModel.Input, m.appModel.Typing, m.appModel.TypingDots, paneWidth)

	board := components.RenderProgress(m.appModel.Bar, m.appModel.Progress, m.appModel.Submitted) +
		"\n" + components.RenderBoard(&m.appModel)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth).Render(chat),
		board,
	)

	return body + "\n" + components.RenderStatus(m.appModel.Status, m.appModel.Typing, m.appModel.TypingDots, m.appModel.Width)
}
