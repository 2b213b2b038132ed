package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apocrypha/forge/internal/eventbus"
	"github.com/apocrypha/forge/internal/marketplace"
	"github.com/apocrypha/forge/internal/models"
)

// savedFlashDuration is how long the "Saved" affordance stays on a box.
const savedFlashDuration = 2 * time.Second

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(m *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus, serviceReady bool) tea.Cmd {
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.Screen == models.ScreenDetail {
		switch keyMsg.String() {
		case "q", "esc", "enter":
			return tea.Quit
		}
		return nil
	}

	if m.Editing {
		return handleEditingKey(m, keyMsg, eb)
	}

	if keyMsg.String() == "tab" {
		if m.Focus == models.PaneChat {
			m.Focus = models.PaneBoard
			m.Input.Blur()
		} else {
			m.Focus = models.PaneChat
			m.Input.Focus()
		}
		return nil
	}

	if m.Focus == models.PaneChat {
		return handleChatKey(m, keyMsg, eb, serviceReady)
	}
	return handleBoardKey(m, keyMsg, eb)
}

func handleChatKey(m *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus, serviceReady bool) tea.Cmd {
	if keyMsg.String() == "enter" {
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return nil
		}
		if m.Typing {
			// Input is locked until the assistant reply resolves or errors.
			m.Status = "Waiting for the assistant"
			return nil
		}
		if !serviceReady {
			m.Input.SetValue("")
			m.Status = "Backend not configured"
			return nil
		}
		if err := eb.SendToCore(eventbus.SendMessageEvent{Message: text}); err != nil {
			m.Status = "Error sending message: " + err.Error()
			return nil
		}
		m.Input.SetValue("")
		return nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(keyMsg)
	return cmd
}

func handleBoardKey(m *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Considerations)-1 {
			m.Cursor++
		}
	case "enter", "e":
		return enterEditMode(m)
	case "s":
		if m.Submitted {
			m.Status = "Idea already submitted"
			return nil
		}
		if !m.Progress.CanSubmit {
			m.Status = fmt.Sprintf("%d/%d developed - complete more considerations to submit",
				m.Progress.CompletedCount, m.Progress.TotalCount)
			return nil
		}
		if err := eb.SendToCore(eventbus.SubmitIdeaEvent{}); err != nil {
			m.Status = "Error submitting: " + err.Error()
			return nil
		}
		m.Status = "Submitting"
	}
	return nil
}

// enterEditMode seeds the edit buffer from the current content. Unset fields
// are empty strings internally, so the buffer starts blank and the sentinel
// only appears as the textarea placeholder.
func enterEditMode(m *models.AppModel) tea.Cmd {
	if len(m.Considerations) == 0 {
		return nil
	}
	c := m.Considerations[m.Cursor]
	m.Editing = true
	m.EditingID = c.ID
	m.EditError = ""
	m.Editor.SetValue(c.Content)
	m.Editor.Placeholder = models.PlaceholderText
	m.Editor.Focus()
	return textarea.Blink
}

func handleEditingKey(m *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "esc":
		// Discard the buffer; nothing is persisted.
		m.Editing = false
		m.EditError = ""
		m.Editor.Blur()
		return nil
	case "ctrl+s":
		content := strings.TrimSpace(m.Editor.Value())
		if err := eb.SendToCore(eventbus.SaveConsiderationEvent{ID: m.EditingID, Content: content}); err != nil {
			m.EditError = err.Error()
			return nil
		}
		m.Status = "Saving"
		return nil
	}

	var cmd tea.Cmd
	m.Editor, cmd = m.Editor.Update(keyMsg)
	return cmd
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(m *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		m.Messages = append(m.Messages, event.Messages...)
		m.Considerations = event.Considerations
		m.Progress = event.Progress
		m.Typing = event.Typing
		m.SessionID = event.SessionID
		if event.Submitted {
			m.Submitted = true
		}
		if m.Cursor >= len(m.Considerations) && len(m.Considerations) > 0 {
			m.Cursor = len(m.Considerations) - 1
		}
		switch {
		case event.Error != nil:
			m.Status = "Error: " + event.Error.Error()
		case event.Typing:
			m.Status = "Thinking"
		default:
			m.Status = "Ready"
		}

	case eventbus.SaveResultEvent:
		if event.Err != nil {
			// Stay in edit mode with the error surfaced; prior content and
			// state are untouched.
			m.EditError = event.Err.Error()
			m.Status = "Save failed"
			return nil
		}
		m.Editing = false
		m.EditError = ""
		m.Editor.Blur()
		m.SavedID = event.ID
		m.SavedUntil = time.Now().Add(savedFlashDuration)
		m.Status = "Saved"

	case eventbus.SubmitResultEvent:
		if event.Err != nil {
			m.Status = "Submit failed: " + event.Err.Error()
			return nil
		}
		m.Submitted = true
		m.DetailNote = event.Message
		m.Status = "Submitted"

	case eventbus.NavigateEvent:
		m.Screen = models.ScreenDetail
		if event.Detail != nil {
			m.Detail = event.Detail
		} else {
			m.Detail = &marketplace.IdeaDetail{Idea: marketplace.Idea{ID: event.IdeaID}}
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

func HandleWindowSizeMsg(m *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	m.Width = sizeMsg.Width
	m.Height = sizeMsg.Height
	m.Input.Width = sizeMsg.Width/2 - 6
	m.Editor.SetWidth(sizeMsg.Width/2 - 6)
	m.Bar.Width = sizeMsg.Width/2 - 8
}

func HandleTickMsg(m *models.AppModel) tea.Cmd {
	// UI animations: typing dots and the saved-flash expiry.
	if m.Typing {
		m.TypingDots = (m.TypingDots + 1) % 4
	}
	if !m.SavedUntil.IsZero() && time.Now().After(m.SavedUntil) {
		m.SavedID = ""
		m.SavedUntil = time.Time{}
	}
	return TickCmd()
}
