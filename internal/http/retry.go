package http

import (
	"math/rand"
	"strings"
	"time"

	"github.com/maqamstudio/maqamctl/internal/constants"
)

// ErrorType classifies a transport failure for retry decisions.
type ErrorType int

const (
	// ErrorTypeSuccess - no error
	ErrorTypeSuccess ErrorType = iota

	// ErrorTypeNetwork - connectivity failure, retryable
	ErrorTypeNetwork

	// ErrorTypeRetryable - transient server-side failure, retryable
	ErrorTypeRetryable

	// ErrorTypeFatal - permanent failure, do not retry
	ErrorTypeFatal
)

// ClassifyError determines whether an error is worth retrying.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeSuccess
	}

	errStr := strings.ToLower(err.Error())

	networkErrors := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"timeout awaiting response",
		"tls handshake timeout",
		"eof",
		"broken pipe",
	}
	for _, pattern := range networkErrors {
		if strings.Contains(errStr, pattern) {
			return ErrorTypeNetwork
		}
	}

	retryableErrors := []string{
		"status 500",
		"status 502",
		"status 503",
		"status 504",
		"too many requests",
		"status 429",
	}
	for _, pattern := range retryableErrors {
		if strings.Contains(errStr, pattern) {
			return ErrorTypeRetryable
		}
	}

	return ErrorTypeFatal
}

// Retryable reports whether the classified error may succeed on retry.
func (t ErrorType) Retryable() bool {
	return t == ErrorTypeNetwork || t == ErrorTypeRetryable
}

// CalculateBackoff returns the wait before retry attempt (0-indexed),
// exponential with full jitter, capped at APIRetryWaitMax.
func CalculateBackoff(attempt int) time.Duration {
	backoff := constants.APIRetryWaitMin * (1 << uint(attempt))
	if backoff > constants.APIRetryWaitMax {
		backoff = constants.APIRetryWaitMax
	}

	// full jitter: uniform in [0, backoff)
	jittered := time.Duration(rand.Int63n(int64(backoff)))
	if jittered < constants.APIRetryWaitMin {
		jittered = constants.APIRetryWaitMin
	}
	return jittered
}
