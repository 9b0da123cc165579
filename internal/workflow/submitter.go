package workflow

import (
	"context"
	"sync"
)

// Control is the triggering control of a workflow: the thing that shows a
// busy label while a submission is outstanding. Implementations must be
// safe to restore more than once.
type Control interface {
	SetBusy(label string)
	Restore()
}

// NopControl is a Control that does nothing, for contexts without a
// visible trigger.
type NopControl struct{}

func (NopControl) SetBusy(string) {}
func (NopControl) Restore()       {}

// Submitter serializes submissions of one workflow. A second Submit while
// one is outstanding fails synchronously with ErrAlreadyInProgress and
// performs no network call. Upload, generate and train-start each own an
// independent Submitter.
type Submitter struct {
	mu        sync.Mutex
	inFlight  bool
	control   Control
	busyLabel string
}

// NewSubmitter creates a guard around the given control. control may be nil.
func NewSubmitter(control Control, busyLabel string) *Submitter {
	if control == nil {
		control = NopControl{}
	}
	return &Submitter{
		control:   control,
		busyLabel: busyLabel,
	}
}

// InFlight reports whether a submission is currently outstanding.
func (s *Submitter) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Submit runs op under the single-flight guard. The control is set busy on
// entry and restored unconditionally on settlement, whatever op returns.
func (s *Submitter) Submit(ctx context.Context, op func(context.Context) error) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrAlreadyInProgress
	}
	s.inFlight = true
	s.mu.Unlock()

	s.control.SetBusy(s.busyLabel)
	defer func() {
		s.control.Restore()
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	return op(ctx)
}
