package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/apocrypha/forge/internal/api"
	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/eventbus"
	"github.com/apocrypha/forge/internal/extract"
	"github.com/apocrypha/forge/internal/logging"
	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/progress"
	"github.com/apocrypha/forge/internal/registry"
)

// A message longer than this is treated as substantial enough to trigger
// consideration updates.
const substantialMessageLength = 50

// chatFallbackMessage is appended verbatim when a chat turn fails.
const chatFallbackMessage = "Sorry, I encountered an error. Please try again."

// ForgeService owns all domain state: the chat transcript, the consideration
// registry and the pending-update set. It consumes UI events from the bus and
// pushes state snapshots back. Per-consideration resolutions run in their own
// goroutines and may interleave freely; every write they make goes through
// the registry's or the state's mutex.
type ForgeService struct {
	client   *api.Client
	config   *config.Config
	state    *ForgeState
	registry *registry.Registry
	eventBus *eventbus.EventBus
	selector CandidateSelector
	resolver extract.Resolver
	log      *logging.Logger
	rng      *rand.Rand
	ctx      context.Context
	cancel   context.CancelFunc

	pushMu        sync.Mutex
	lastSentCount int // Messages already delivered to the UI

	resolveDelayMin time.Duration // Per-field resolution pacing, lower bound
	resolveDelayMax time.Duration // Per-field resolution pacing, upper bound
	swapDelay       time.Duration // Pause before swapping new content in
	navigateDelay   time.Duration // Confirmation dwell before detail view
}

// Option customizes ForgeService construction for tests and alternate
// runtimes.
type Option func(*ForgeService)

// WithSelector replaces the candidate selection strategy.
func WithSelector(sel CandidateSelector) Option {
	return func(s *ForgeService) {
		if sel != nil {
			s.selector = sel
		}
	}
}

// WithResolver replaces the extraction resolver.
func WithResolver(r extract.Resolver) Option {
	return func(s *ForgeService) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithDelays overrides the pacing delays; tests pass zeros.
func WithDelays(resolveMin, resolveMax, swap time.Duration) Option {
	return func(s *ForgeService) {
		s.resolveDelayMin = resolveMin
		s.resolveDelayMax = resolveMax
		s.swapDelay = swap
	}
}

// WithNavigateDelay overrides the post-submit confirmation dwell.
func WithNavigateDelay(d time.Duration) Option {
	return func(s *ForgeService) {
		s.navigateDelay = d
	}
}

// WithLogger replaces the file logger. Nil disables logging.
func WithLogger(l *logging.Logger) Option {
	return func(s *ForgeService) {
		s.log = l
	}
}

func NewForgeService(cfg *config.Config, eb *eventbus.EventBus, opts ...Option) (*ForgeService, error) {
	client, err := api.NewClient(cfg.ServerURL(), cfg.Timeout())
	if err != nil {
		return nil, err
	}
	resolver, err := extract.NewDraftResolver()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	service := &ForgeService{
		client:          client,
		config:          cfg,
		state:           NewForgeState(),
		registry:        registry.New(),
		eventBus:        eb,
		selector:        NewRandomSelector(),
		resolver:        resolver,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		ctx:             ctx,
		cancel:          cancel,
		resolveDelayMin: 500 * time.Millisecond,
		resolveDelayMax: 1500 * time.Millisecond,
		swapDelay:       300 * time.Millisecond,
		navigateDelay:   3 * time.Second,
	}

	if dir, err := config.Dir(); err == nil {
		if logger, err := logging.New(dir); err == nil {
			service.log = logger
		}
	}

	for _, opt := range opts {
		opt(service)
	}

	service.addWelcomeMessages(cfg)

	return service, nil
}

// Start runs the core logic in a goroutine
func (s *ForgeService) Start() {
	// Send initial state to UI immediately
	s.pushStateToUI(nil)
	go s.eventLoop()
	go s.loadSession()
}

func (s *ForgeService) Stop() {
	s.cancel()
	s.log.Close()
}

func (s *ForgeService) IsReady() bool {
	return s.config.IsValid()
}

func (s *ForgeService) eventLoop() {
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

func (s *ForgeService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SendMessageEvent:
		s.processMessage(e.Message)
	case eventbus.SaveConsiderationEvent:
		s.saveConsideration(e.ID, e.Content)
	case eventbus.SubmitIdeaEvent:
		s.submitIdea()
	}
}

// loadSession seeds the client from the server: session id and aggregate
// counts from the status endpoint, per-field content from the rendered forge
// page. Failures are logged and leave the client on local derivation.
func (s *ForgeService) loadSession() {
	status, err := s.client.SessionStatus(s.ctx)
	if err != nil {
		s.log.Printf("session status: %v", err)
		return
	}
	s.state.SetSessionID(status.SessionID)

	if content, err := s.client.ForgeContent(s.ctx); err != nil {
		s.log.Printf("seed forge content: %v", err)
	} else {
		for id, text := range content {
			if text == "" {
				continue
			}
			if _, err := s.registry.SetContent(registry.Kind(id), text); err != nil {
				s.log.Printf("seed %s: %v", id, err)
			}
		}
	}

	server := progress.FromServer(
		status.CompletionStatus.CompletedCount,
		status.CompletionStatus.TotalCount,
		status.CompletionStatus.CanSubmit,
	)
	s.pushStateToUI(&server)
}

// processMessage runs one chat turn: lock input, mark candidates, call the
// backend, then fan out resolutions for everything pending.
func (s *ForgeService) processMessage(userMessage string) {
	if s.state.Typing() {
		return // Input is locked until the current turn resolves
	}
	s.state.StartTurnWithUserMessage(userMessage)
	s.pushStateToUI(nil)

	if len(userMessage) > substantialMessageLength {
		s.markCandidates()
		s.pushStateToUI(nil)
	}

	resp, err := s.client.Chat(s.ctx, userMessage)
	if err != nil {
		// Recover locally: fixed fallback reply, input unlocked. Candidates
		// marked above stay pending and drain on the next successful turn.
		s.state.FinishTurnWithFallback(chatFallbackMessage, err)
		s.log.Printf("chat turn: %v", err)
		s.pushStateToUI(nil)
		return
	}

	s.state.FinishTurnWithAssistantMessage(resp.Response, resp.SessionID)
	s.pushStateToUI(nil)

	s.resolvePending()
}

// markCandidates asks the selector for incomplete considerations to fill and
// flags them. A kind already pending from an earlier turn is skipped so the
// pending set never holds duplicates.
func (s *ForgeService) markCandidates() {
	for _, id := range s.selector.SelectCandidates(s.registry) {
		chain, added := s.state.AddPending(id)
		if !added {
			continue
		}
		marked, err := s.registry.MarkUpdating(id)
		if err != nil || !marked {
			// Completed considerations are never silently overwritten.
			s.state.RemovePending(id)
			continue
		}
		s.log.Printf("resolution %s: marked %s", chain, id)
	}
}

// resolvePending fans out one goroutine per pending consideration, including
// any carried over from prior turns. The turn does not wait for them: input
// is already unlocked, and each resolution reports through the registry and
// a state push when it lands.
func (s *ForgeService) resolvePending() {
	conversation := s.state.Messages()
	for id, chain := range s.state.PendingIDs() {
		delay := s.resolveDelayMin
		if jitter := s.resolveDelayMax - s.resolveDelayMin; jitter > 0 {
			delay += time.Duration(s.rng.Int63n(int64(jitter)))
		}
		go s.resolveConsideration(id, chain, delay, conversation)
	}
}

// resolveConsideration resolves replacement content for one field and applies
// it on arrival. Overlapping chains for the same id are possible when turns
// overlap; the last arrival wins.
func (s *ForgeService) resolveConsideration(id registry.Kind, chain string, delay time.Duration, conversation []models.Message) {
	if !s.sleep(delay) {
		return
	}

	content, err := s.resolver.Resolve(s.ctx, id, conversation)
	if err != nil || content == "" {
		// Failed or no-op resolution: the flag must still come off.
		s.registry.ClearUpdating(id)
		s.state.RemovePending(id)
		if err != nil {
			s.log.Printf("resolution %s: %s: %v", chain, id, err)
		}
		s.pushStateToUI(nil)
		return
	}

	if !s.sleep(s.swapDelay) {
		return
	}

	if _, err := s.registry.SetContent(id, content); err != nil {
		s.log.Printf("resolution %s: %s: %v", chain, id, err)
		s.state.RemovePending(id)
		return
	}
	s.state.RemovePending(id)

	// Silent save: local state is authoritative for display, so a persistence
	// failure is logged and swallowed.
	if _, err := s.client.UpdateConsideration(s.ctx, string(id), content); err != nil {
		s.log.Printf("resolution %s: silent save %s: %v", chain, id, err)
	}

	s.pushStateToUI(nil)
}

// sleep pauses for d, returning false when the service shut down first.
// Abandoned resolutions run no cleanup beyond this early return.
func (s *ForgeService) sleep(d time.Duration) bool {
	if d <= 0 {
		return s.ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// saveConsideration is the direct-edit save path. Unlike the chat path there
// is no optimistic commit: the registry only changes after the server
// confirms, and the server's completion status is applied as authoritative.
func (s *ForgeService) saveConsideration(id registry.Kind, content string) {
	result, err := s.client.UpdateConsideration(s.ctx, string(id), content)
	if err != nil {
		s.sendToUI(eventbus.SaveResultEvent{ID: id, Err: err})
		return
	}

	if _, err := s.registry.SetContent(id, content); err != nil {
		s.sendToUI(eventbus.SaveResultEvent{ID: id, Err: err})
		return
	}

	server := progress.FromServer(
		result.CompletionStatus.CompletedCount,
		result.CompletionStatus.TotalCount,
		result.CompletionStatus.CanSubmit,
	)
	s.sendToUI(eventbus.SaveResultEvent{ID: id})
	s.pushStateToUI(&server)
}

// submitIdea gates on aggregate eligibility, submits, and schedules the
// navigation to the new idea's detail view.
func (s *ForgeService) submitIdea() {
	if s.state.Submitted() {
		s.sendToUI(eventbus.SubmitResultEvent{Err: errors.New("idea already submitted")})
		return
	}
	if !progress.FromRegistry(s.registry).CanSubmit {
		s.sendToUI(eventbus.SubmitResultEvent{
			Err: fmt.Errorf("at least %d considerations must be completed before submitting", progress.SubmitThreshold),
		})
		return
	}

	result, err := s.client.SubmitIdea(s.ctx)
	if err != nil {
		// Surfaced and retryable.
		s.sendToUI(eventbus.SubmitResultEvent{Err: err})
		return
	}

	s.state.SetSubmitted()
	s.sendToUI(eventbus.SubmitResultEvent{Message: result.Message, IdeaID: result.IdeaID})
	s.pushStateToUI(nil)

	// Let the confirmation be seen, then move to the detail view.
	go func(ideaID string) {
		if !s.sleep(s.navigateDelay) {
			return
		}
		nav := eventbus.NavigateEvent{IdeaID: ideaID}
		if detail, err := s.client.IdeaDetail(s.ctx, ideaID); err != nil {
			s.log.Printf("idea detail %s: %v", ideaID, err)
		} else {
			nav.Detail = &detail
		}
		s.sendToUI(nav)
	}(result.IdeaID)
}

// pushStateToUI sends new transcript entries plus full board and progress
// snapshots. When the server just computed a completion status, the caller
// passes it in and it overrides the local derivation for this push.
func (s *ForgeService) pushStateToUI(serverStatus *progress.Status) {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()

	allMessages := s.state.Messages()
	newMessages := allMessages[s.lastSentCount:]
	s.lastSentCount = len(allMessages)

	prog := progress.FromRegistry(s.registry)
	if serverStatus != nil {
		prog = *serverStatus
	}

	s.sendToUI(eventbus.StateUpdateEvent{
		Messages:       newMessages,
		Considerations: s.registry.Snapshot(),
		Progress:       prog,
		Typing:         s.state.Typing(),
		SessionID:      s.state.SessionID(),
		Submitted:      s.state.Submitted(),
		Error:          s.state.LastError(),
	})
}

func (s *ForgeService) sendToUI(event eventbus.CoreEvent) {
	if err := s.eventBus.SendToUI(event); err != nil {
		s.log.Printf("send to UI: %v", err)
	}
}

// GetInitialMessages returns the messages present before the UI attaches.
func (s *ForgeService) GetInitialMessages() []models.Message {
	return s.state.Messages()
}

func (s *ForgeService) addWelcomeMessages(cfg *config.Config) {
	s.state.AddProgramMessage("-- APOCRYPHA FORGE --")

	if cfg.IsValid() {
		s.state.AddProgramMessage(fmt.Sprintf("Backend: %s [OK]", cfg.ServerURL()))
		s.state.AddProgramMessage("Describe your idea and the considerations on the right will fill in as you talk.")
	} else {
		s.state.AddProgramMessage(fmt.Sprintf("Backend: %s [NOT CONFIGURED]", cfg.ServerURL()))
		s.state.AddProgramMessage("Set the backend address to start:")
		s.state.AddProgramMessage("• Run: forge profile add <name>")
		s.state.AddProgramMessage("• Or set FORGE_SERVER_URL")
	}

	s.state.AddProgramMessage("Controls: Tab switches panes, Enter sends or edits, Ctrl+C exits")
	s.state.AddProgramMessage("")
}
