package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/jacobxo0/AIforsikring-sub002/config"
	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

const geminiReasonAPIKeyInvalid = "API_KEY_INVALID"

// GeminiUsecase is the completion adapter for Google Gemini.
type GeminiUsecase struct {
	cfg config.Gemini
	log *zap.Logger
}

func NewGeminiUsecase(cfg config.Gemini, log *zap.Logger) *GeminiUsecase {
	return &GeminiUsecase{
		cfg: cfg,
		log: log,
	}
}

func (g *GeminiUsecase) Configured() bool {
	return g.cfg.GeminiAPIKey != ""
}

func (g *GeminiUsecase) Model() string {
	return g.cfg.GeminiModel
}

func (g *GeminiUsecase) Complete(
	ctx context.Context,
	systemPrompt, userMessage string,
	opts model.CompletionOptions,
) (string, error) {
	if !g.Configured() {
		return "", model.NewProviderError(model.ProviderErrorMissingCredential, "", nil)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.cfg.GeminiAPIKey))
	if err != nil {
		return "", model.NewProviderError(
			model.ProviderErrorUnknown, fmt.Sprintf("failed to create gemini client: %v", err), err,
		)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(opts.Model)
	generativeModel.SetTemperature(opts.Temperature)
	generativeModel.SetMaxOutputTokens(int32(opts.MaxTokens))
	generativeModel.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))

	resp, err := generativeModel.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := extractText(resp)
	if text == "" {
		return "", model.NewProviderError(model.ProviderErrorEmptyResponse, "", nil)
	}
	if resp.UsageMetadata != nil {
		g.log.Debug(
			"gemini completion",
			zap.Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
			zap.Int32("completion_tokens", resp.UsageMetadata.CandidatesTokenCount),
		)
	}
	return text, nil
}

// extractText returns the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}

func classifyGeminiError(err error) *model.ProviderError {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Reason() == geminiReasonAPIKeyInvalid {
			return model.NewProviderError(model.ProviderErrorInvalidCredential, apiErr.Error(), err)
		}
		if kind, ok := geminiKindForHTTP(apiErr.HTTPCode()); ok {
			return model.NewProviderError(kind, apiErr.Error(), err)
		}
		if st := apiErr.GRPCStatus(); st != nil {
			if kind, ok := geminiKindForGRPC(st.Code()); ok {
				return model.NewProviderError(kind, apiErr.Error(), err)
			}
		}
		return model.NewProviderError(model.ProviderErrorUnknown, apiErr.Error(), err)
	}

	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		for _, item := range googleErr.Errors {
			if item.Reason == geminiReasonAPIKeyInvalid {
				return model.NewProviderError(model.ProviderErrorInvalidCredential, googleErr.Message, err)
			}
		}
		if kind, ok := geminiKindForHTTP(googleErr.Code); ok {
			return model.NewProviderError(kind, googleErr.Message, err)
		}
		return model.NewProviderError(model.ProviderErrorUnknown, googleErr.Message, err)
	}

	return model.NewProviderError(model.ProviderErrorUnknown, err.Error(), err)
}

func geminiKindForHTTP(code int) (model.ProviderErrorKind, bool) {
	switch code {
	case http.StatusTooManyRequests:
		return model.ProviderErrorQuotaExceeded, true
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.ProviderErrorInvalidCredential, true
	case http.StatusNotFound:
		return model.ProviderErrorModelUnavailable, true
	default:
		return model.ProviderErrorUnknown, false
	}
}

func geminiKindForGRPC(code codes.Code) (model.ProviderErrorKind, bool) {
	switch code {
	case codes.ResourceExhausted:
		return model.ProviderErrorQuotaExceeded, true
	case codes.Unauthenticated, codes.PermissionDenied:
		return model.ProviderErrorInvalidCredential, true
	case codes.NotFound:
		return model.ProviderErrorModelUnavailable, true
	default:
		return model.ProviderErrorUnknown, false
	}
}
