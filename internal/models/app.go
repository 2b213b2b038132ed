package models

import (
	"time"

	pbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/apocrypha/forge/internal/marketplace"
	"github.com/apocrypha/forge/internal/progress"
	"github.com/apocrypha/forge/internal/registry"
)

// Pane is which half of the forge screen owns the keyboard.
type Pane int

const (
	PaneChat Pane = iota
	PaneBoard
)

// Screen is which top-level view is showing.
type Screen int

const (
	ScreenForge Screen = iota
	ScreenDetail
)

// AppModel represents the UI state - only local display concerns. Domain
// state lives in the core service and arrives through the event bus.
type AppModel struct {
	// Chat pane
	Messages   []Message       // Transcript to display
	Input      textinput.Model // Message composer
	Typing     bool            // Turn in flight, input locked
	TypingDots int             // Animation counter for the typing indicator

	// Consideration board
	Considerations []registry.Consideration // Latest snapshots in display order
	Titles         map[registry.Kind]string // Display titles from the catalog
	Hints          map[registry.Kind]string // Edit-mode hints from the catalog
	Progress       progress.Status          // Aggregate completion picture
	Bar            pbar.Model               // Progress bar widget
	Cursor         int                      // Selected consideration

	// Edit session, one box at a time
	Editing    bool
	EditingID  registry.Kind
	Editor     textarea.Model
	EditError  string        // Save failure surfaced while staying in edit mode
	SavedID    registry.Kind // Box showing the transient "Saved" flash
	SavedUntil time.Time     // When the flash expires

	// Submission
	Submitted  bool
	Detail     *marketplace.IdeaDetail // Populated when navigating after submit
	DetailNote string                  // Confirmation text shown with the detail view

	Focus        Pane
	Screen       Screen
	Status       string // Status bar text
	SessionID    string
	Width        int
	Height       int
	ServiceReady bool
}
