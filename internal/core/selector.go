package core

import (
	"math/rand"
	"time"

	"github.com/apocrypha/forge/internal/registry"
)

// CandidateSelector picks which incomplete considerations a substantial chat
// turn should try to fill. The interface exists so the stand-in randomized
// pick can later be replaced by extraction-confidence scoring without
// touching the pipeline.
type CandidateSelector interface {
	SelectCandidates(reg *registry.Registry) []registry.Kind
}

// RandomSelector chooses one to three incomplete considerations without
// preference, mirroring the extraction step it stands in for. Completed
// considerations are never candidates for silent overwrite.
type RandomSelector struct {
	rng *rand.Rand
}

func NewRandomSelector() *RandomSelector {
	return NewSeededSelector(time.Now().UnixNano())
}

// NewSeededSelector fixes the source for reproducible picks.
func NewSeededSelector(seed int64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSelector) SelectCandidates(reg *registry.Registry) []registry.Kind {
	var eligible []registry.Kind
	for _, c := range reg.Snapshot() {
		if c.State != registry.Completed {
			eligible = append(eligible, c.ID)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	n := s.rng.Intn(3) + 1
	if n > len(eligible) {
		n = len(eligible)
	}
	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	return eligible[:n]
}
