package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/jacobxo0/AIforsikring-sub002/config"
	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
	openai_tools "github.com/jacobxo0/AIforsikring-sub002/pkg/openai-tools"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	OpenAIRoleSystem    = openai.ChatMessageRoleSystem
	OpenAIRoleUser      = openai.ChatMessageRoleUser
	OpenAIRoleAssistant = openai.ChatMessageRoleAssistant

	openAICodeInsufficientQuota = "insufficient_quota"
	openAICodeInvalidAPIKey     = "invalid_api_key"
	openAICodeModelNotFound     = "model_not_found"
)

type TokenCounter func(messages []openai.ChatCompletionMessage, model string) (int, error)

type OpenAIOption func(*OpenAIUsecase)

func WithTokenCounter(counter TokenCounter) OpenAIOption {
	return func(u *OpenAIUsecase) { u.countTokens = counter }
}

// OpenAIUsecase is the completion adapter for OpenAI-compatible endpoints.
type OpenAIUsecase struct {
	cfg         config.OpenAI
	log         *zap.Logger
	countTokens TokenCounter
}

func NewOpenAIUsecase(cfg config.OpenAI, log *zap.Logger, opts ...OpenAIOption) *OpenAIUsecase {
	u := &OpenAIUsecase{
		cfg:         cfg,
		log:         log,
		countTokens: openai_tools.CountToken,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (o *OpenAIUsecase) Configured() bool {
	return o.cfg.OpenAIAPIKey != ""
}

func (o *OpenAIUsecase) Model() string {
	return o.cfg.OpenAIModel
}

func (o *OpenAIUsecase) Complete(
	ctx context.Context,
	systemPrompt, userMessage string,
	opts model.CompletionOptions,
) (string, error) {
	if !o.Configured() {
		return "", model.NewProviderError(model.ProviderErrorMissingCredential, "", nil)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: parseMessageSourceToRole(model.MessageSourceSystem), Content: systemPrompt},
		{Role: parseMessageSourceToRole(model.MessageSourceUser), Content: userMessage},
	}
	o.logPromptTokens(messages, opts.Model)

	clientConfig := openai.DefaultConfig(o.cfg.OpenAIAPIKey)
	if o.cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = o.cfg.OpenAIBaseURL
	}
	c := openai.NewClientWithConfig(clientConfig)

	req := openai.ChatCompletionRequest{
		Model:       opts.Model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Messages:    messages,
	}
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", model.NewProviderError(model.ProviderErrorEmptyResponse, "", nil)
	}

	o.log.Debug(
		"openai completion",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// logPromptTokens is best effort: tiktoken may need to fetch its encoding.
func (o *OpenAIUsecase) logPromptTokens(messages []openai.ChatCompletionMessage, chatModel string) {
	if o.countTokens == nil || !o.log.Core().Enabled(zap.DebugLevel) {
		return
	}
	tokenCount, err := o.countTokens(messages, chatModel)
	if err != nil {
		o.log.Debug("count token error", zap.Error(err))
		return
	}
	o.log.Debug("estimated prompt tokens", zap.Int("tokens", tokenCount), zap.String("model", chatModel))
}

func classifyOpenAIError(err error) *model.ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code, _ := apiErr.Code.(string)
		switch {
		case code == openAICodeInsufficientQuota || apiErr.Type == openAICodeInsufficientQuota:
			return model.NewProviderError(model.ProviderErrorQuotaExceeded, apiErr.Message, err)
		case code == openAICodeInvalidAPIKey || apiErr.HTTPStatusCode == http.StatusUnauthorized:
			return model.NewProviderError(model.ProviderErrorInvalidCredential, apiErr.Message, err)
		case code == openAICodeModelNotFound || apiErr.HTTPStatusCode == http.StatusNotFound:
			return model.NewProviderError(model.ProviderErrorModelUnavailable, apiErr.Message, err)
		}
		return model.NewProviderError(model.ProviderErrorUnknown, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return model.NewProviderError(model.ProviderErrorInvalidCredential, reqErr.Error(), err)
		case http.StatusNotFound:
			return model.NewProviderError(model.ProviderErrorModelUnavailable, reqErr.Error(), err)
		}
		return model.NewProviderError(model.ProviderErrorUnknown, reqErr.Error(), err)
	}

	return model.NewProviderError(model.ProviderErrorUnknown, err.Error(), err)
}

func parseMessageSourceToRole(source model.MessageSource) string {
	switch source {
	case model.MessageSourceSystem:
		return OpenAIRoleSystem
	case model.MessageSourceAssistant:
		return OpenAIRoleAssistant
	default:
		return OpenAIRoleUser
	}
}
