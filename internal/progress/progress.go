package progress

import (
	"github.com/apocrypha/forge/internal/registry"
)

// SubmitThreshold is the number of completed considerations required before an
// idea may be submitted to the marketplace.
const SubmitThreshold = 6

// Status is the aggregate completion picture shown in the progress bar and
// used to gate submission.
type Status struct {
	CompletedCount int
	TotalCount     int
	CanSubmit      bool
	Percentage     float64
}

// FromRegistry derives completion locally. This is the same-session fallback;
// whenever the server has just computed eligibility, FromServer wins.
func FromRegistry(reg *registry.Registry) Status {
	return fromCounts(reg.CompletedCount(), reg.TotalCount(), nil)
}

// FromServer treats a server-reported completion status as authoritative,
// including its submit verdict.
func FromServer(completed, total int, canSubmit bool) Status {
	return fromCounts(completed, total, &canSubmit)
}

func fromCounts(completed, total int, canSubmit *bool) Status {
	s := Status{
		CompletedCount: completed,
		TotalCount:     total,
		CanSubmit:      completed >= SubmitThreshold,
	}
	if canSubmit != nil {
		s.CanSubmit = *canSubmit
	}
	if total > 0 {
		s.Percentage = 100 * float64(completed) / float64(total)
	}
	return s
}
