package scoring

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeArtifactMissing ErrorCode = "ARTIFACT_MISSING"
	ErrCodeInferenceFailed ErrorCode = "INFERENCE_FAILED"
)

// Error is a scoring failure. Message is safe to return to callers.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newArtifactMissingError(message string, cause error) *Error {
	return &Error{Code: ErrCodeArtifactMissing, Message: message, Err: cause}
}

func newInferenceError(endpoint string, cause error) *Error {
	return &Error{Code: ErrCodeInferenceFailed, Message: endpoint + " inference failed", Err: cause}
}

// IsArtifactMissing reports whether err was caused by an artifact that failed to load.
func IsArtifactMissing(err error) (*Error, bool) {
	var scoringErr *Error
	if errors.As(err, &scoringErr) && scoringErr.Code == ErrCodeArtifactMissing {
		return scoringErr, true
	}
	return nil, false
}
