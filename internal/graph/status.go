package graph

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid chart config")
	ErrNoMinimumDate    = errors.New("minimum date is not set")
	ErrNoValues         = errors.New("no values")
	ErrNoScale          = errors.New("no usable maximum value")
	ErrComparisonHidden = errors.New("comparison value is hidden")
	ErrMarkerSuppressed = errors.New("marker suppressed by path line mode")
)

// Status tells whether a drawing step produced output. A nil Skipped means
// the step was drawn; otherwise it carries the missing prerequisite.
type Status struct {
	Skipped error
}

func drawn() Status { return Status{} }

func skipped(err error) Status { return Status{Skipped: err} }

func (s Status) Drawn() bool { return s.Skipped == nil }

func (s Status) String() string {
	if s.Skipped == nil {
		return "drawn"
	}
	return "skipped: " + s.Skipped.Error()
}
