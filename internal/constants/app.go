package constants

import (
	"time"
)

// Application identity
const (
	// AppName - binary and config directory name
	AppName = "maqamctl"

	// DefaultBaseURL - default Arabic Music AI backend address
	DefaultBaseURL = "http://localhost:5000"
)

// API and HTTP timeouts
const (
	// APIRequestTimeout - default bounded timeout for a single API call (30 seconds)
	// Every request gets a deadline; the backend offers no server-side guarantee.
	APIRequestTimeout = 30 * time.Second

	// APIConnectionTestTimeout - timeout for testing backend connectivity (10 seconds)
	APIConnectionTestTimeout = 10 * time.Second

	// HTTPIdleConnTimeout - how long to keep idle connections open (90 seconds)
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPTLSHandshakeTimeout - timeout for TLS handshake (10 seconds)
	HTTPTLSHandshakeTimeout = 10 * time.Second

	// HTTPDialTimeout - timeout for establishing a connection (10 seconds)
	HTTPDialTimeout = 10 * time.Second
)

// Retry configuration for the API client
const (
	// APIRetryMax - maximum retry attempts for transient API failures
	APIRetryMax = 3

	// APIRetryWaitMin - minimum wait between retries
	APIRetryWaitMin = 500 * time.Millisecond

	// APIRetryWaitMax - maximum wait between retries
	APIRetryWaitMax = 5 * time.Second
)

// Training status polling
const (
	// TrainingPollInterval - fixed delay between training status polls (2 seconds).
	// The backend reports progress per epoch; 2s keeps the display current without
	// hammering the status endpoint.
	TrainingPollInterval = 2 * time.Second

	// TrainingPollBudget - maximum total polling time before the watcher gives up
	// and reports a timeout terminal state (30 minutes). Guarantees the client
	// never polls forever if the server never reaches a terminal state.
	TrainingPollBudget = 30 * time.Minute

	// TrainingPollMaxErrors - consecutive transient poll failures tolerated
	// before the watcher aborts
	TrainingPollMaxErrors = 3
)

// Upload limits
const (
	// MaxAudioFileSize - largest audio file accepted for upload (100 MB,
	// matching the backend's request size cap)
	MaxAudioFileSize = 100 * 1024 * 1024
)
