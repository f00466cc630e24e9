package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/jacobxo0/AIforsikring-sub002/internal/model"
	"go.uber.org/zap/zaptest"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []string
	requests []api.Chattable
	sendErr  error
	updates  chan api.Update
	stopped  bool
}

func (b *fakeBot) Send(c api.Chattable) (api.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if msg, ok := c.(api.MessageConfig); ok {
		b.sent = append(b.sent, msg.Text)
	}
	return api.Message{}, b.sendErr
}

func (b *fakeBot) Request(c api.Chattable) (*api.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &api.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(api.UpdateConfig) api.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

type fakeRelay struct {
	reply    string
	err      error
	messages []string
}

func (r *fakeRelay) Relay(_ context.Context, message string) (string, error) {
	r.messages = append(r.messages, message)
	return r.reply, r.err
}

func newTestTelegram(t *testing.T, relay Relayer) (*TelegramUsecase, *fakeBot) {
	t.Helper()
	bot := &fakeBot{updates: make(chan api.Update)}
	tg, err := NewTelegramUsecase(
		TelegramUsecaseDeps{
			Relay: relay,
			Bot:   bot,
			Log:   zaptest.NewLogger(t),
		},
	)
	if err != nil {
		t.Fatalf("NewTelegramUsecase: %v", err)
	}
	return tg, bot
}

func TestNewTelegramUsecase_SetsCommands(t *testing.T) {
	_, bot := newTestTelegram(t, &fakeRelay{})

	if len(bot.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(bot.requests))
	}
	if _, ok := bot.requests[0].(api.SetMyCommandsConfig); !ok {
		t.Errorf("first request = %T, want SetMyCommandsConfig", bot.requests[0])
	}
}

func TestTelegram_Commands(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{CommandStart, MessageCommandStart},
		{CommandHelp, MessageCommandHelp},
		{"new", MessageCommandUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.command, func(t *testing.T) {
			relay := &fakeRelay{reply: "unused"}
			tg, bot := newTestTelegram(t, relay)

			if err := tg.handleMessage(context.Background(), 42, tc.command, "/"+tc.command); err != nil {
				t.Fatalf("handleMessage: %v", err)
			}
			if len(bot.sent) != 1 || bot.sent[0] != tc.want {
				t.Errorf("sent = %v, want [%q]", bot.sent, tc.want)
			}
			if len(relay.messages) != 0 {
				t.Errorf("commands must not reach the relay, got %v", relay.messages)
			}
		})
	}
}

func TestTelegram_RelaysText(t *testing.T) {
	relay := &fakeRelay{reply: "Indboforsikring dækker typisk..."}
	tg, bot := newTestTelegram(t, relay)

	if err := tg.handleMessage(context.Background(), 42, "", "Hvad dækker indbo?"); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}

	if len(relay.messages) != 1 || relay.messages[0] != "Hvad dækker indbo?" {
		t.Errorf("relay messages = %v", relay.messages)
	}
	if len(bot.sent) != 1 || bot.sent[0] != "Indboforsikring dækker typisk..." {
		t.Errorf("sent = %v", bot.sent)
	}

	var typing bool
	for _, req := range bot.requests {
		if action, ok := req.(api.ChatActionConfig); ok && action.Action == api.ChatTyping {
			typing = true
		}
	}
	if !typing {
		t.Error("expected a typing action")
	}
}

func TestTelegram_RelayErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"quota",
			translateProviderError(model.NewProviderError(model.ProviderErrorQuotaExceeded, "", nil), "da"),
			"API-kvoten er opbrugt. Prøv igen senere, eller kontakt administratoren.",
		},
		{
			"missing credential",
			newConfigurationError(ErrCredentialNotConfigured),
			MessageCredentialNotConfigured,
		},
		{
			"plain error",
			errors.New("boom"),
			MessageNoResponseFromAI,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tg, bot := newTestTelegram(t, &fakeRelay{err: tc.err})

			if err := tg.handleMessage(context.Background(), 1, "", "hej"); err != nil {
				t.Fatalf("handleMessage: %v", err)
			}
			if len(bot.sent) != 1 || bot.sent[0] != tc.want {
				t.Errorf("sent = %v, want [%q]", bot.sent, tc.want)
			}
		})
	}
}

func TestTelegram_SendError(t *testing.T) {
	tg, bot := newTestTelegram(t, &fakeRelay{reply: "svar"})
	bot.sendErr = errors.New("network down")

	if err := tg.handleMessage(context.Background(), 1, "", "hej"); err == nil {
		t.Fatal("expected send error")
	}
}

func TestTelegram_RunStopsOnCancel(t *testing.T) {
	tg, bot := newTestTelegram(t, &fakeRelay{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- tg.Run(ctx)
	}()
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	bot.mu.Lock()
	defer bot.mu.Unlock()
	if !bot.stopped {
		t.Error("expected StopReceivingUpdates to be called")
	}
}

func TestTelegram_RunReturnsWhenUpdatesClose(t *testing.T) {
	tg, bot := newTestTelegram(t, &fakeRelay{})
	close(bot.updates)

	if err := tg.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
