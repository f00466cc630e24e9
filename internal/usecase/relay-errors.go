package usecase

import (
	"fmt"
	"net/http"

	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
	"github.com/jacobxo0/AIforsikring-sub002/pkg/local"
)

type RelayErrorKind int8

const (
	RelayErrorValidation = RelayErrorKind(iota)
	RelayErrorConfiguration
	RelayErrorProvider
	RelayErrorEmptyResult
)

func (k RelayErrorKind) String() string {
	switch k {
	case RelayErrorValidation:
		return "validation"
	case RelayErrorConfiguration:
		return "configuration"
	case RelayErrorProvider:
		return "provider"
	default:
		return "empty_result"
	}
}

const (
	MessageInvalidRequestBody      = "invalid request body"
	MessageMessageRequired         = "message is required"
	MessageCredentialNotConfigured = "provider credential not configured"
	MessageNoResponseFromAI        = "no response from AI"
)

var (
	textQuotaExceeded = local.NewSet(
		"API-kvoten er opbrugt. Prøv igen senere, eller kontakt administratoren.",
		local.NewTrans(local.En, "The API quota is used up. Try again later or contact the administrator."),
	)
	textInvalidCredential = local.NewSet(
		"Ugyldig API-nøgle. Kontakt administratoren.",
		local.NewTrans(local.En, "Invalid API key. Contact the administrator."),
	)
	textModelUnavailable = local.NewSet(
		"AI-modellen er ikke tilgængelig i øjeblikket. Prøv igen senere.",
		local.NewTrans(local.En, "The AI model is not available right now. Try again later."),
	)
	textUnknownProviderError = local.NewSet(
		"Der opstod en fejl i kommunikationen med AI-tjenesten: %s",
		local.NewTrans(local.En, "An error occurred while talking to the AI service: %s"),
	)
	textUnknownErrorDetail = local.NewSet(
		"ukendt fejl",
		local.NewTrans(local.En, "unknown error"),
	)
)

// RelayError is the single error type returned by RelayUsecase. Message is
// safe to show to end users.
type RelayError struct {
	Kind    RelayErrorKind
	Status  int
	Message string
	Err     error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

func newValidationError(message string, err error) *RelayError {
	return &RelayError{Kind: RelayErrorValidation, Status: http.StatusBadRequest, Message: message, Err: err}
}

func newConfigurationError(err error) *RelayError {
	return &RelayError{
		Kind: RelayErrorConfiguration, Status: http.StatusInternalServerError,
		Message: MessageCredentialNotConfigured, Err: err,
	}
}

func newEmptyResultError(err error) *RelayError {
	return &RelayError{
		Kind: RelayErrorEmptyResult, Status: http.StatusInternalServerError,
		Message: MessageNoResponseFromAI, Err: err,
	}
}

// ProviderErrorMessage maps a provider error to its user-facing text.
func ProviderErrorMessage(providerErr *model.ProviderError, language local.Language) string {
	switch providerErr.Kind {
	case model.ProviderErrorMissingCredential:
		return MessageCredentialNotConfigured
	case model.ProviderErrorEmptyResponse:
		return MessageNoResponseFromAI
	case model.ProviderErrorQuotaExceeded:
		return textQuotaExceeded.Text(language)
	case model.ProviderErrorInvalidCredential:
		return textInvalidCredential.Text(language)
	case model.ProviderErrorModelUnavailable:
		return textModelUnavailable.Text(language)
	default:
		detail := providerErr.Message
		if detail == "" {
			detail = textUnknownErrorDetail.Text(language)
		}
		return textUnknownProviderError.Format(language, detail)
	}
}

// translateProviderError turns an adapter error into a RelayError.
func translateProviderError(err error, language local.Language) *RelayError {
	providerErr := model.AsProviderError(err)
	message := ProviderErrorMessage(providerErr, language)
	switch providerErr.Kind {
	case model.ProviderErrorMissingCredential:
		return newConfigurationError(providerErr)
	case model.ProviderErrorEmptyResponse:
		return newEmptyResultError(providerErr)
	}
	return &RelayError{
		Kind: RelayErrorProvider, Status: http.StatusInternalServerError,
		Message: message, Err: providerErr,
	}
}
