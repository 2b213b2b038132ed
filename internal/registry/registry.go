package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Kind identifies one of the eight structured fields that describe an idea.
// The set is closed; the backend rejects anything else.
type Kind string

const (
	ProblemDefinition    Kind = "problem_definition"
	TargetMarket         Kind = "target_market"
	SolutionApproach     Kind = "solution_approach"
	CompetitiveAnalysis  Kind = "competitive_analysis"
	BusinessModel        Kind = "business_model"
	TechnicalFeasibility Kind = "technical_feasibility"
	TeamStructure        Kind = "team_structure"
	GrowthStrategy       Kind = "growth_strategy"
)

var kinds = []Kind{
	ProblemDefinition,
	TargetMarket,
	SolutionApproach,
	CompetitiveAnalysis,
	BusinessModel,
	TechnicalFeasibility,
	TeamStructure,
	GrowthStrategy,
}

// Kinds returns every consideration kind in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// FillState is derived from word count alone. The Updating flag is carried
// separately on the snapshot because it can overlay any fill state.
type FillState int

const (
	Empty FillState = iota
	InProgress
	Completed
)

func (s FillState) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "empty"
	}
}

// CompletedWords is the word count at which a consideration counts as developed.
const CompletedWords = 100

// ErrInvalidID reports a consideration id outside the closed set.
var ErrInvalidID = errors.New("unknown consideration id")

// Consideration is an immutable snapshot of one field.
type Consideration struct {
	ID        Kind
	Content   string
	WordCount int
	State     FillState
	Updating  bool
}

// Registry holds the current content and resolution flags for all eight
// considerations. It is the only shared mutable state in the client; every
// access goes through the mutex so interleaved resolution goroutines cannot
// observe a half-applied write.
type Registry struct {
	mu       sync.RWMutex
	content  map[Kind]string
	updating map[Kind]bool
}

func New() *Registry {
	r := &Registry{
		content:  make(map[Kind]string, len(kinds)),
		updating: make(map[Kind]bool, len(kinds)),
	}
	for _, k := range kinds {
		r.content[k] = ""
	}
	return r
}

// WordCount counts maximal non-whitespace runs, the same rule the backend and
// the edit buffer use.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// StateFor derives the fill state from a word count.
func StateFor(words int) FillState {
	switch {
	case words == 0:
		return Empty
	case words >= CompletedWords:
		return Completed
	default:
		return InProgress
	}
}

// Valid reports whether id belongs to the closed consideration set.
func Valid(id Kind) bool {
	return valid(id)
}

func valid(id Kind) bool {
	for _, k := range kinds {
		if k == id {
			return true
		}
	}
	return false
}

// SetContent overwrites a consideration's content, rederives its state and
// clears any pending Updating flag for it.
func (r *Registry) SetContent(id Kind, content string) (Consideration, error) {
	if !valid(id) {
		return Consideration{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content[id] = content
	delete(r.updating, id)
	return r.snapshotLocked(id), nil
}

// MarkUpdating flags a consideration as having a resolution in flight without
// touching its content. Completed considerations are never overwritten
// silently, so flagging one is a no-op rather than an error, as is flagging
// twice. The returned bool reports whether the flag was newly set.
func (r *Registry) MarkUpdating(id Kind) (bool, error) {
	if !valid(id) {
		return false, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updating[id] || StateFor(WordCount(r.content[id])) == Completed {
		return false, nil
	}
	r.updating[id] = true
	return true, nil
}

// ClearUpdating drops the flag without changing content, for resolutions that
// fail or produce nothing.
func (r *Registry) ClearUpdating(id Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.updating, id)
}

func (r *Registry) Get(id Kind) (Consideration, error) {
	if !valid(id) {
		return Consideration{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked(id), nil
}

// Snapshot returns all considerations in display order.
func (r *Registry) Snapshot() []Consideration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Consideration, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, r.snapshotLocked(k))
	}
	return out
}

func (r *Registry) CompletedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, k := range kinds {
		if StateFor(WordCount(r.content[k])) == Completed {
			count++
		}
	}
	return count
}

func (r *Registry) TotalCount() int {
	return len(kinds)
}

func (r *Registry) snapshotLocked(id Kind) Consideration {
	content := r.content[id]
	words := WordCount(content)
	return Consideration{
		ID:        id,
		Content:   content,
		WordCount: words,
		State:     StateFor(words),
		Updating:  r.updating[id],
	}
}
