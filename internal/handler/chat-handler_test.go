package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
	"go.uber.org/zap/zaptest"
)

type stubRelay struct {
	reply string
	err   error
}

func (s stubRelay) Relay(context.Context, string) (string, error) {
	return s.reply, s.err
}

func serveChat(t *testing.T, relay Relayer, body string) (*httptest.ResponseRecorder, model.ChatError) {
	t.Helper()
	h := NewChatHandler(relay, zaptest.NewLogger(t))
	rr := httptest.NewRecorder()
	h.Chat(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))

	var out model.ChatError
	json.Unmarshal(rr.Body.Bytes(), &out)
	return rr, out
}

func TestChat_UnexpectedError(t *testing.T) {
	rr, out := serveChat(t, stubRelay{err: errors.New("boom")}, `{"message":"hej"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if out.Error != "no response from AI" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestChat_BodyTooLarge(t *testing.T) {
	body := `{"message":"` + strings.Repeat("a", maxRequestBodyBytes) + `"}`
	rr, out := serveChat(t, stubRelay{reply: "ok"}, body)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
	if out.Error != "invalid request body" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestChat_ReplyVerbatim(t *testing.T) {
	const reply = "  **Ansvarsforsikring**\n\n- dækker skade på andre  "
	h := NewChatHandler(stubRelay{reply: reply}, zaptest.NewLogger(t))
	rr := httptest.NewRecorder()
	h.Chat(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hej"}`)))

	var out model.ChatReply
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rr.Code != http.StatusOK || out.Reply != reply {
		t.Errorf("got %d %q", rr.Code, out.Reply)
	}
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("got %d %s", rr.Code, rr.Body.String())
	}
}
