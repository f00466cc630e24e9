package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/jacobxo0/AIforsikring-sub002/config"
	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
)

func TestGeminiUsecase_ImplementsCompleter(t *testing.T) {
	var _ Completer = (*GeminiUsecase)(nil)
}

func TestGeminiUsecase_Complete_MissingCredential(t *testing.T) {
	adapter := NewGeminiUsecase(config.Gemini{GeminiModel: "gemini-1.5-flash"}, zaptest.NewLogger(t))
	if adapter.Configured() {
		t.Fatal("expected adapter without key to be unconfigured")
	}
	if adapter.Model() != "gemini-1.5-flash" {
		t.Errorf("Model() = %q", adapter.Model())
	}

	_, err := adapter.Complete(context.Background(), "s", "u", model.CompletionOptions{Model: "gemini-1.5-flash", Temperature: 0.7, MaxTokens: 10})
	var providerErr *model.ProviderError
	if !errors.As(err, &providerErr) || providerErr.Kind != model.ProviderErrorMissingCredential {
		t.Fatalf("err = %v, want missing credential", err)
	}
}

func TestClassifyGeminiError_GoogleAPI(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind model.ProviderErrorKind
	}{
		{"quota", &googleapi.Error{Code: http.StatusTooManyRequests, Message: "Resource has been exhausted"}, model.ProviderErrorQuotaExceeded},
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, model.ProviderErrorInvalidCredential},
		{"forbidden", &googleapi.Error{Code: http.StatusForbidden}, model.ProviderErrorInvalidCredential},
		{
			"api key invalid reason",
			&googleapi.Error{
				Code:    http.StatusBadRequest,
				Message: "API key not valid",
				Errors:  []googleapi.ErrorItem{{Reason: "API_KEY_INVALID"}},
			},
			model.ProviderErrorInvalidCredential,
		},
		{"not found", &googleapi.Error{Code: http.StatusNotFound}, model.ProviderErrorModelUnavailable},
		{"server error", &googleapi.Error{Code: http.StatusInternalServerError, Message: "internal"}, model.ProviderErrorUnknown},
		{"wrapped", fmt.Errorf("call: %w", &googleapi.Error{Code: http.StatusTooManyRequests}), model.ProviderErrorQuotaExceeded},
		{"plain", errors.New("dial tcp: timeout"), model.ProviderErrorUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyGeminiError(tc.err).Kind; got != tc.wantKind {
				t.Errorf("kind = %s, want %s", got, tc.wantKind)
			}
		})
	}
}

func TestGeminiKindForGRPC(t *testing.T) {
	tests := map[codes.Code]model.ProviderErrorKind{
		codes.ResourceExhausted: model.ProviderErrorQuotaExceeded,
		codes.Unauthenticated:   model.ProviderErrorInvalidCredential,
		codes.PermissionDenied:  model.ProviderErrorInvalidCredential,
		codes.NotFound:          model.ProviderErrorModelUnavailable,
	}
	for code, want := range tests {
		got, ok := geminiKindForGRPC(code)
		if !ok || got != want {
			t.Errorf("geminiKindForGRPC(%s) = %s, %v; want %s", code, got, ok, want)
		}
	}
	if _, ok := geminiKindForGRPC(codes.Internal); ok {
		t.Error("Internal should not be classified")
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Din "), genai.Text("indboforsikring")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	if got := extractText(resp); got != "Din indboforsikring" {
		t.Errorf("extractText = %q", got)
	}
	if got := extractText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("extractText(empty) = %q", got)
	}
	if got := extractText(nil); got != "" {
		t.Errorf("extractText(nil) = %q", got)
	}
}
