package services

import (
	"context"

	"github.com/maqamstudio/maqamctl/internal/logging"
	"github.com/maqamstudio/maqamctl/internal/models"
	"github.com/maqamstudio/maqamctl/internal/state"
	"github.com/maqamstudio/maqamctl/internal/workflow"
)

// TrainingService starts, stops and observes model training sessions.
type TrainingService struct {
	backend   Backend
	builder   *workflow.Builder
	submitter *workflow.Submitter
	poller    *workflow.Poller
	log       *logging.Logger

	// sessionPath overrides the session state file location, for tests.
	sessionPath string
}

// NewTrainingService creates a TrainingService. control may be nil.
func NewTrainingService(backend Backend, control workflow.Control, log *logging.Logger) *TrainingService {
	return &TrainingService{
		backend:   backend,
		builder:   workflow.NewBuilder(),
		submitter: workflow.NewSubmitter(control, "Starting..."),
		poller: workflow.NewPoller(func(ctx context.Context) (*models.TrainingStatus, error) {
			return backend.TrainingStatus(ctx)
		}, log),
		log: log,
	}
}

// Poller exposes the status poller so callers can tune it or attach update
// callbacks before watching.
func (t *TrainingService) Poller() *workflow.Poller {
	return t.poller
}

// Prerequisites reports whether the library is ready for training.
func (t *TrainingService) Prerequisites(ctx context.Context) (*models.TrainingPrerequisites, error) {
	return t.backend.TrainingPrerequisites(ctx)
}

// Status fetches one status snapshot without attaching a watcher.
func (t *TrainingService) Status(ctx context.Context) (*models.TrainingStatus, error) {
	return t.backend.TrainingStatus(ctx)
}

// History fetches the finished-session history.
func (t *TrainingService) History(ctx context.Context) ([]models.TrainingHistoryEntry, error) {
	return t.backend.TrainingHistory(ctx)
}

// Start validates the config, submits the start request, then polls the
// session to its terminal state. The whole run, polling included, sits
// inside the single-flight guard: the triggering control is restored only
// once the session settles, and a second Start meanwhile fails with
// ErrAlreadyInProgress.
//
// After the terminal snapshot, the dashboard stats and the session history
// are refreshed exactly once each.
func (t *TrainingService) Start(ctx context.Context, cfg models.TrainingConfig, onUpdate func(models.TrainingStatus)) (*TrainingOutcome, error) {
	if err := t.builder.Validate(cfg); err != nil {
		return nil, err
	}

	var outcome *TrainingOutcome
	err := t.submitter.Submit(ctx, func(ctx context.Context) error {
		result, err := t.backend.StartTraining(ctx, cfg)
		if err != nil {
			return err
		}
		t.log.Info().Str("session_id", result.SessionID).Int("songs", result.SongsCount).Msg("training started")

		if err := state.RecordTrainingStart(result.SessionID, t.sessionPath); err != nil {
			// Not fatal: the watch still works, only a later detached
			// stop loses the session id.
			t.log.Warn().Err(err).Msg("failed to record training session")
		}

		final, err := t.watch(ctx, onUpdate)
		if err != nil {
			return err
		}
		outcome = final
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// Watch attaches to the running session and polls it to its terminal
// state. Returns workflow.ErrAlreadyPolling when a watcher is already
// attached in this process.
func (t *TrainingService) Watch(ctx context.Context, onUpdate func(models.TrainingStatus)) (*TrainingOutcome, error) {
	return t.watch(ctx, onUpdate)
}

func (t *TrainingService) watch(ctx context.Context, onUpdate func(models.TrainingStatus)) (*TrainingOutcome, error) {
	final, err := t.poller.Run(ctx, onUpdate)
	if err != nil {
		return nil, err
	}

	if err := state.ClearTraining(t.sessionPath); err != nil {
		t.log.Warn().Err(err).Msg("failed to clear training session")
	}

	// Reconcile dependent views once the session settled.
	stats, err := t.backend.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	history, err := t.backend.TrainingHistory(ctx)
	if err != nil {
		return nil, err
	}

	return &TrainingOutcome{Final: final, Stats: stats, History: history}, nil
}

// Stop asks the backend to stop the active session, then keeps observing
// until a snapshot confirms the session actually left the training state.
// The stop request alone proves nothing; only the confirming snapshot does.
func (t *TrainingService) Stop(ctx context.Context) (*TrainingOutcome, error) {
	session, err := state.Load(t.sessionPath)
	if err != nil {
		return nil, err
	}

	if err := t.backend.StopTraining(ctx, session.TrainingSessionID); err != nil {
		return nil, err
	}
	t.log.Info().Str("session_id", session.TrainingSessionID).Msg("stop requested, waiting for confirmation")

	outcome, err := t.watch(ctx, nil)
	if err == workflow.ErrAlreadyPolling {
		// A watcher is already attached; it will observe the stop.
		return nil, nil
	}
	return outcome, err
}
