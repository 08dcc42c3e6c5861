package core

import (
	"fmt"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ClientErrorBadConfig   = "CLIENT_BAD_CONFIG"
	ClientErrorAuthFailed  = "CLIENT_AUTH_FAILED"
	ClientErrorRateLimited = "CLIENT_RATE_LIMITED"
	ClientErrorRemote      = "CLIENT_REMOTE_ERROR"
	ClientErrorTransform   = "CLIENT_TRANSFORM_FAILED"
)

func NewConfigError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ClientErrorBadConfig)
}

func NewAuthError(source error, message string, metadata map[string]any) *goerrors.Error {
	var err *goerrors.Error
	if source != nil {
		err = goerrors.Wrap(source, goerrors.CategoryAuth, message)
	} else {
		err = goerrors.New(message, goerrors.CategoryAuth)
	}
	err = err.WithCode(http.StatusUnauthorized).WithTextCode(ClientErrorAuthFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func NewTransformError(source error, message string) *goerrors.Error {
	var err *goerrors.Error
	if source != nil {
		err = goerrors.Wrap(source, goerrors.CategoryOperation, message)
	} else {
		err = goerrors.New(message, goerrors.CategoryOperation)
	}
	return err.WithCode(http.StatusUnprocessableEntity).WithTextCode(ClientErrorTransform)
}

// RemoteError is a non-2xx response from the API, carrying the decoded
// response body so callers can inspect why the server rejected the call.
// When the body is not valid JSON, Body holds {"message": <raw text>}.
type RemoteError struct {
	StatusCode int
	Body       any
}

func (e *RemoteError) Error() string {
	message := e.Message()
	if message == "" {
		return fmt.Sprintf("openfinance: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("openfinance: request failed with status %d: %s", e.StatusCode, message)
}

// Message returns the "message" field of the decoded body, when present.
func (e *RemoteError) Message() string {
	payload, ok := e.Body.(map[string]any)
	if !ok {
		return ""
	}
	message, _ := payload["message"].(string)
	return message
}

func (e *RemoteError) ToServiceError() *goerrors.Error {
	return goerrors.New(e.Error(), goerrors.CategoryExternal).
		WithCode(e.StatusCode).
		WithTextCode(ClientErrorRemote).
		WithMetadata(map[string]any{
			"status_code": e.StatusCode,
			"response":    e.Body,
		})
}

// RateLimitError is a 429 that survived every retry attempt.
type RateLimitError struct {
	Attempts   int
	RetryAfter time.Duration
	Body       any
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("openfinance: rate limited after %d attempts", e.Attempts)
}

func (e *RateLimitError) ToServiceError() *goerrors.Error {
	metadata := map[string]any{
		"attempts": e.Attempts,
		"response": e.Body,
	}
	if e.RetryAfter > 0 {
		metadata["retry_after_ms"] = e.RetryAfter.Milliseconds()
	}
	return goerrors.New(e.Error(), goerrors.CategoryRateLimit).
		WithCode(http.StatusTooManyRequests).
		WithTextCode(ClientErrorRateLimited).
		WithMetadata(metadata)
}
