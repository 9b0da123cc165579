package models

// TrainingState enumerates the lifecycle of a training session as reported by
// the backend. StateTimeout is synthesized client-side when the poll budget is
// exhausted; the server never sends it.
type TrainingState string

const (
	StateIdle      TrainingState = "idle"
	StateTraining  TrainingState = "training"
	StateCompleted TrainingState = "completed"
	StateStopped   TrainingState = "stopped"
	StateFailed    TrainingState = "failed"
	StateTimeout   TrainingState = "timeout"
)

// Terminal reports whether no further transition can occur without a new
// explicit start action.
func (s TrainingState) Terminal() bool {
	switch s {
	case StateCompleted, StateStopped, StateFailed, StateTimeout:
		return true
	}
	return false
}

// TrainingStatus is one polled snapshot of a training session. It is mutated
// exclusively by server responses; the client only ever displays the
// last-seen snapshot.
type TrainingStatus struct {
	State           TrainingState `json:"state"`
	ProgressPercent float64       `json:"progress"`
	CurrentEpoch    int           `json:"current_epoch"`
	TotalEpochs     int           `json:"total_epochs"`
	Loss            float64       `json:"loss"`
	Accuracy        float64       `json:"accuracy"`
	ETA             string        `json:"eta"`
}

// TrainingConfig is the payload for starting a training session.
type TrainingConfig struct {
	Epochs       int     `json:"epochs" form:"epochs" validate:"required,gt=0"`
	LearningRate float64 `json:"learning_rate" form:"learning_rate" validate:"required,gt=0"`
	BatchSize    int     `json:"batch_size" form:"batch_size" validate:"required,gt=0"`
	FocusArea    string  `json:"focus_area,omitempty" form:"focus_area" validate:"omitempty,oneof=melody rhythm lyrics full"`
}

// TrainingStartResult is the backend's answer to a successful start call.
type TrainingStartResult struct {
	SessionID  string `json:"session_id"`
	SongsCount int    `json:"songs_count"`
}

// TrainingPrerequisites reports whether the library holds enough material to
// train on.
type TrainingPrerequisites struct {
	SongsCount      int  `json:"songs_count"`
	SongsReady      bool `json:"songs_ready"`
	SongsWithLyrics int  `json:"songs_with_lyrics"`
	LyricsReady     bool `json:"lyrics_ready"`
}

// TrainingHistoryEntry is one row of the finished-session history.
type TrainingHistoryEntry struct {
	SessionID     string  `json:"session_id"`
	Status        string  `json:"status"`
	Progress      float64 `json:"progress"`
	Epochs        int     `json:"epochs"`
	SongsUsed     int     `json:"songs_used"`
	FinalAccuracy float64 `json:"final_accuracy,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
