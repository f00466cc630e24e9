package model

import (
	"errors"
	"fmt"
)

type ProviderErrorKind int8

const (
	ProviderErrorUnknown = ProviderErrorKind(iota)
	ProviderErrorMissingCredential
	ProviderErrorQuotaExceeded
	ProviderErrorInvalidCredential
	ProviderErrorModelUnavailable
	ProviderErrorEmptyResponse
)

func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderErrorMissingCredential:
		return "missing_credential"
	case ProviderErrorQuotaExceeded:
		return "quota_exceeded"
	case ProviderErrorInvalidCredential:
		return "invalid_credential"
	case ProviderErrorModelUnavailable:
		return "model_unavailable"
	case ProviderErrorEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// ProviderError is returned by completion adapters. Message carries the
// provider's own text and is only shown to users for unknown errors.
type ProviderError struct {
	Kind    ProviderErrorKind
	Message string
	Err     error
}

func NewProviderError(kind ProviderErrorKind, message string, err error) *ProviderError {
	return &ProviderError{Kind: kind, Message: message, Err: err}
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider error: %s", e.Kind)
	}
	return fmt.Sprintf("provider error: %s: %s", e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError reports the ProviderError in err's chain. Errors that are
// not ProviderErrors are wrapped as unknown.
func AsProviderError(err error) *ProviderError {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr
	}
	return NewProviderError(ProviderErrorUnknown, err.Error(), err)
}
