package api

import "fmt"

// InvalidMessageError reports input that is neither a string, a list of
// strings, nor a list of well-formed role/content messages. Never retried.
type InvalidMessageError struct {
	Message string
}

func (e *InvalidMessageError) Error() string {
	return "invalid message format: " + e.Message
}

func NewInvalidMessageError(msg string) error {
	return &InvalidMessageError{Message: msg}
}

// RemoteCallError reports a failed provider API call. Retryable.
type RemoteCallError struct {
	Provider string
	Err      error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s: remote call failed: %v", e.Provider, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

func NewRemoteCallError(provider string, err error) error {
	return &RemoteCallError{Provider: provider, Err: err}
}

// RetryExhaustedError reports that the retry budget was consumed. It wraps
// the last underlying error and is fatal to the caller.
type RetryExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retry exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

func NewRetryExhaustedError(attempts int, err error) error {
	return &RetryExhaustedError{Attempts: attempts, Err: err}
}

// CodeBlockNotFoundError reports a response without a closed fenced code
// block. Never retried.
type CodeBlockNotFoundError struct {
	Message string
}

func (e *CodeBlockNotFoundError) Error() string {
	return "code block not found: " + e.Message
}

func NewCodeBlockNotFoundError(msg string) error {
	return &CodeBlockNotFoundError{Message: msg}
}
