package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/maqamstudio/maqamctl/internal/constants"
	"github.com/maqamstudio/maqamctl/internal/http"
	"github.com/maqamstudio/maqamctl/internal/logging"
	"github.com/maqamstudio/maqamctl/internal/models"
)

// PollState is the poller's lifecycle state.
type PollState int

const (
	PollIdle PollState = iota
	PollActive
	PollTerminal
)

func (s PollState) String() string {
	switch s {
	case PollIdle:
		return "idle"
	case PollActive:
		return "polling"
	case PollTerminal:
		return "terminal"
	}
	return "unknown"
}

// FetchFunc fetches one status snapshot.
type FetchFunc func(ctx context.Context) (*models.TrainingStatus, error)

// WaitFunc blocks for the given delay or until the context is cancelled.
// Injectable so tests run without real timers.
type WaitFunc func(ctx context.Context, d time.Duration) error

func sleepWait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Poller observes one long-running server job by fetching status snapshots
// at a fixed interval until a non-training state confirms the job settled.
//
// The poller never stops optimistically: a stop request issued elsewhere
// only ends the loop once a snapshot reports a non-training state. A
// generation counter discards snapshots from superseded sessions, and the
// poll budget guarantees termination even if the server never settles,
// surfacing a synthetic timeout state.
type Poller struct {
	// Interval is the fixed delay between polls.
	Interval time.Duration

	// Budget caps total polling time; past it the job is reported as
	// StateTimeout.
	Budget time.Duration

	// MaxErrors is the number of consecutive transient fetch failures
	// tolerated before the watcher gives up.
	MaxErrors int

	// OnTerminal is called once with the settling snapshot.
	OnTerminal func(models.TrainingStatus)

	// Wait delays between polls. Defaults to a timer.
	Wait WaitFunc

	fetch FetchFunc
	log   *logging.Logger

	mu         sync.Mutex
	state      PollState
	generation uint64
	onUpdate   func(models.TrainingStatus)
}

// NewPoller creates a poller with the default interval, budget and error
// tolerance.
func NewPoller(fetch FetchFunc, log *logging.Logger) *Poller {
	return &Poller{
		Interval:  constants.TrainingPollInterval,
		Budget:    constants.TrainingPollBudget,
		MaxErrors: constants.TrainingPollMaxErrors,
		Wait:      sleepWait,
		fetch:     fetch,
		log:       log,
	}
}

// State returns the poller's current lifecycle state.
func (p *Poller) State() PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Supersede invalidates the running watcher, if any. Its remaining
// snapshots are discarded and it exits with ErrSuperseded; a new Run may
// begin immediately.
func (p *Poller) Supersede() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	if p.state == PollActive {
		p.state = PollIdle
	}
}

// Run polls until the job settles and returns the final snapshot. Only one
// watcher may be attached at a time; a second Run returns ErrAlreadyPolling
// and leaves the active watcher, its update callback included, untouched.
// onUpdate, when non-nil, is called with every applied snapshot, terminal
// included.
//
// The returned snapshot carries StateTimeout when the poll budget ran out
// before the server settled.
func (p *Poller) Run(ctx context.Context, onUpdate func(models.TrainingStatus)) (*models.TrainingStatus, error) {
	gen, err := p.begin(onUpdate)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(p.Budget)
	consecutiveErrs := 0

	for {
		snap, err := p.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.settle(gen, PollIdle)
				return nil, ctx.Err()
			}

			consecutiveErrs++
			p.log.Warn().Err(err).Int("consecutive", consecutiveErrs).Msg("status poll failed")

			if !http.ClassifyError(err).Retryable() || consecutiveErrs >= p.MaxErrors {
				p.settle(gen, PollIdle)
				return nil, err
			}
			if werr := p.Wait(ctx, http.CalculateBackoff(consecutiveErrs-1)); werr != nil {
				p.settle(gen, PollIdle)
				return nil, werr
			}
			continue
		}
		consecutiveErrs = 0

		if !p.apply(gen, *snap) {
			return nil, ErrSuperseded
		}

		// Any non-training state settles the job: completed, stopped,
		// failed, or an idle report confirming a stop took effect.
		if snap.State != models.StateTraining {
			final := *snap
			p.finish(gen, final)
			return &final, nil
		}

		if time.Now().After(deadline) {
			final := *snap
			final.State = models.StateTimeout
			p.log.Warn().Dur("budget", p.Budget).Msg("poll budget exhausted, reporting timeout")
			p.finish(gen, final)
			return &final, nil
		}

		if werr := p.Wait(ctx, p.Interval); werr != nil {
			p.settle(gen, PollIdle)
			return nil, werr
		}
	}
}

// begin claims the watcher slot. The update callback is attached here,
// under the lock, so a rejected Run never replaces the active watcher's
// callback.
func (p *Poller) begin(onUpdate func(models.TrainingStatus)) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == PollActive {
		return 0, ErrAlreadyPolling
	}
	p.state = PollActive
	p.generation++
	p.onUpdate = onUpdate
	return p.generation, nil
}

// apply delivers a snapshot to the update callback unless the watcher was
// superseded.
func (p *Poller) apply(gen uint64, snap models.TrainingStatus) bool {
	p.mu.Lock()
	current := gen == p.generation
	cb := p.onUpdate
	p.mu.Unlock()

	if !current {
		return false
	}
	if cb != nil {
		cb(snap)
	}
	return true
}

func (p *Poller) finish(gen uint64, snap models.TrainingStatus) {
	p.mu.Lock()
	current := gen == p.generation
	if current {
		p.state = PollTerminal
	}
	p.mu.Unlock()

	if current && p.OnTerminal != nil {
		p.OnTerminal(snap)
	}
}

func (p *Poller) settle(gen uint64, state PollState) {
	p.mu.Lock()
	if gen == p.generation {
		p.state = state
	}
	p.mu.Unlock()
}
