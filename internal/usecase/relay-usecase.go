package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jacobxo0/AIforsikring-sub002/config"
	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
	"github.com/jacobxo0/AIforsikring-sub002/pkg/local"
	"go.uber.org/zap"
)

var (
	ErrMessageRequired         = errors.New("message is empty")
	ErrCredentialNotConfigured = errors.New("provider credential not configured")
	ErrEmptyCompletion         = errors.New("provider returned empty text")
)

// Completer is the completion adapter contract.
type Completer interface {
	Configured() bool
	Model() string
	Complete(ctx context.Context, systemPrompt, userMessage string, opts model.CompletionOptions) (string, error)
}

type RelayUsecaseDeps struct {
	Completer Completer
	Log       *zap.Logger
}

// RelayUsecase forwards one user message to the completion adapter. It holds
// no per-request state and is safe for concurrent use.
type RelayUsecase struct {
	RelayUsecaseDeps
	cfg      config.Relay
	language local.Language
}

func NewRelayUsecase(deps RelayUsecaseDeps, cfg config.Relay) *RelayUsecase {
	return &RelayUsecase{
		RelayUsecaseDeps: deps,
		cfg:              cfg,
		language:         local.ParseLanguage(cfg.Language),
	}
}

// Relay returns the provider's reply verbatim, or a *RelayError.
func (r *RelayUsecase) Relay(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", newValidationError(MessageMessageRequired, ErrMessageRequired)
	}
	if !r.Completer.Configured() {
		r.Log.Error("provider credential not configured")
		return "", newConfigurationError(ErrCredentialNotConfigured)
	}

	opts := model.CompletionOptions{
		Model:       r.Completer.Model(),
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
	}
	if err := opts.Validate(); err != nil {
		r.Log.Error("invalid completion options", zap.Error(err))
		return "", newConfigurationError(fmt.Errorf("failed to validate completion options: %w", err))
	}

	start := time.Now()
	reply, err := r.Completer.Complete(ctx, SystemPrompt, message, opts)
	if err != nil {
		relayErr := translateProviderError(err, r.language)
		r.Log.Error(
			"provider call failed",
			zap.String("kind", relayErr.Kind.String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", relayErr
	}
	if reply == "" {
		r.Log.Warn("provider returned empty reply", zap.Duration("duration", time.Since(start)))
		return "", newEmptyResultError(ErrEmptyCompletion)
	}

	r.Log.Info(
		"provider call succeeded",
		zap.String("model", opts.Model),
		zap.Duration("duration", time.Since(start)),
	)
	return reply, nil
}
