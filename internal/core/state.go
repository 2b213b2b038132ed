package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/registry"
)

// ForgeState manages the conversation and pending-update state for the
// event-driven core. The transcript is append-only; the pending set tracks
// which considerations have a resolution chain in flight.
type ForgeState struct {
	mu        sync.RWMutex
	messages  []models.Message // Single source of truth for the transcript
	typing    bool             // A chat turn is in flight, input is locked
	lastError error
	sessionID string
	submitted bool
	pending   map[registry.Kind]string // Pending set: kind -> resolution chain id
}

func NewForgeState() *ForgeState {
	return &ForgeState{
		messages: make([]models.Message, 0),
		pending:  make(map[registry.Kind]string),
	}
}

func (fs *ForgeState) Messages() []models.Message {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	result := make([]models.Message, len(fs.messages))
	copy(result, fs.messages)
	return result
}

// AddProgramMessage adds a program message (welcome, controls, notices).
func (fs *ForgeState) AddProgramMessage(content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.messages = append(fs.messages, models.Message{
		Content: content,
		Type:    models.Program,
	})
}

// Atomic operations for event ordering

// StartTurnWithUserMessage locks input and appends the user message in one
// step so the UI never observes one without the other.
func (fs *ForgeState) StartTurnWithUserMessage(content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.typing = true
	fs.lastError = nil
	fs.messages = append(fs.messages, models.Message{
		Content: content,
		Type:    models.User,
	})
}

// FinishTurnWithAssistantMessage unlocks input, appends the reply and
// refreshes the session id.
func (fs *ForgeState) FinishTurnWithAssistantMessage(content, sessionID string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.typing = false
	fs.lastError = nil
	if sessionID != "" {
		fs.sessionID = sessionID
	}
	fs.messages = append(fs.messages, models.Message{
		Content: content,
		Type:    models.Assistant,
	})
}

// FinishTurnWithFallback unlocks input and appends the fixed fallback reply.
// Pending updates from this turn are left in place; the next successful turn
// drains them.
func (fs *ForgeState) FinishTurnWithFallback(fallback string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.typing = false
	fs.lastError = err
	fs.messages = append(fs.messages, models.Message{
		Content: fallback,
		Type:    models.Assistant,
	})
}

func (fs *ForgeState) Typing() bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.typing
}

func (fs *ForgeState) LastError() error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.lastError
}

func (fs *ForgeState) SetError(err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.lastError = err
}

func (fs *ForgeState) SessionID() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.sessionID
}

func (fs *ForgeState) SetSessionID(id string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if id != "" {
		fs.sessionID = id
	}
}

func (fs *ForgeState) Submitted() bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.submitted
}

func (fs *ForgeState) SetSubmitted() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.submitted = true
}

// Pending-update tracking

// AddPending registers a consideration for resolution and returns the chain
// id for it. The set never holds duplicates: a kind already pending is
// refused, which also keeps a new turn from double-marking a field a prior
// turn is still resolving.
func (fs *ForgeState) AddPending(id registry.Kind) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, exists := fs.pending[id]; exists {
		return "", false
	}
	chain := uuid.NewString()
	fs.pending[id] = chain
	return chain, true
}

// RemovePending drops a consideration from the pending set once its
// resolution completed or failed.
func (fs *ForgeState) RemovePending(id registry.Kind) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.pending, id)
}

// PendingIDs returns every consideration with a resolution in flight,
// including ones carried over from earlier turns, with their chain ids.
func (fs *ForgeState) PendingIDs() map[registry.Kind]string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make(map[registry.Kind]string, len(fs.pending))
	for k, v := range fs.pending {
		out[k] = v
	}
	return out
}

func (fs *ForgeState) PendingCount() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.pending)
}
