package youtube

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind partitions upstream failures by how the pipeline should react.
type ErrorKind int

const (
	// KindTransient covers timeouts, rate limits, and generic network
	// failures. Retried within a stage, then demoted to "no result".
	KindTransient ErrorKind = iota

	// KindPermanent covers videos that no client identity can reach:
	// private, deleted, age-restricted. Propagates through all stages.
	KindPermanent

	// KindAbsent signals that captions provably do not exist; further
	// sibling attempts in the stage would waste the time budget.
	KindAbsent
)

// ErrEmptyPayload is the structural-absence signal: the caption endpoint
// answered, but with an empty or malformed payload. Mirrors the upstream
// behavior of serving empty documents for videos without real captions.
var ErrEmptyPayload = errors.New("empty caption payload")

// UpstreamError wraps an upstream failure with its classification.
type UpstreamError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// permanentPatterns are substrings of upstream failure phrasing that signal
// conditions no fallback or client identity can recover from.
var permanentPatterns = []string{
	"private video",
	"video unavailable",
	"this video is unavailable",
	"age-restricted",
	"age restricted",
	"has been removed",
}

func classifyMessage(msg string) ErrorKind {
	lower := strings.ToLower(msg)
	for _, p := range permanentPatterns {
		if strings.Contains(lower, p) {
			return KindPermanent
		}
	}
	return KindTransient
}

func upstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Kind: classifyMessage(err.Error()), Err: err}
}

func IsPermanent(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind == KindPermanent
	}
	return false
}
