package usecase

import (
	"context"
	"errors"
	"fmt"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	MessageCommandStart   = "Velkommen til AI Forsikring! Skriv dit spørgsmål om forsikring, så svarer jeg så godt jeg kan."
	MessageCommandHelp    = "Skriv et spørgsmål om forsikring, sammenligning af policer, skadesanmeldelser eller dine rettigheder. Hvert spørgsmål besvares for sig."
	MessageCommandUnknown = "Den kommando kender jeg ikke. Brug /help for at få hjælp."

	CommandStart = "start"
	CommandHelp  = "help"

	updatesTimeoutSeconds = 60
)

// Bot is the part of the Telegram client the front uses.
type Bot interface {
	Send(c api.Chattable) (api.Message, error)
	Request(c api.Chattable) (*api.APIResponse, error)
	GetUpdatesChan(config api.UpdateConfig) api.UpdatesChannel
	StopReceivingUpdates()
}

type Relayer interface {
	Relay(ctx context.Context, message string) (string, error)
}

type TelegramUsecaseDeps struct {
	Relay Relayer
	Bot   Bot
	Log   *zap.Logger
}

type TelegramUsecase struct {
	TelegramUsecaseDeps
}

func NewTelegramUsecase(deps TelegramUsecaseDeps) (*TelegramUsecase, error) {
	_, err := deps.Bot.Request(
		api.NewSetMyCommands(
			[]api.BotCommand{
				{
					Command:     CommandStart,
					Description: "Start samtalen",
				},
				{
					Command:     CommandHelp,
					Description: "Få hjælp",
				},
			}...,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set bot commands: %w", err)
	}

	return &TelegramUsecase{TelegramUsecaseDeps: deps}, nil
}

// Run polls for updates until ctx is cancelled.
func (t *TelegramUsecase) Run(ctx context.Context) error {
	u := api.NewUpdate(0)
	u.Timeout = updatesTimeoutSeconds

	updates := t.Bot.GetUpdatesChan(u)
	defer t.Bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			chatID := update.Message.Chat.ID
			var command string
			if update.Message.IsCommand() {
				command = update.Message.Command()
			}
			if err := t.handleMessage(ctx, chatID, command, update.Message.Text); err != nil {
				t.Log.Error("failed to handle telegram message", zap.Int64("chat_id", chatID), zap.Error(err))
			}
		}
	}
}

func (t *TelegramUsecase) handleMessage(ctx context.Context, chatID int64, command, text string) error {
	if command != "" {
		var answerText string
		switch command {
		case CommandStart:
			answerText = MessageCommandStart
		case CommandHelp:
			answerText = MessageCommandHelp
		default:
			answerText = MessageCommandUnknown
		}
		return t.sendMessage(chatID, answerText)
	}

	var answerText string
	wg := conc.NewWaitGroup()
	wg.Go(
		func() {
			if _, err := t.Bot.Request(api.NewChatAction(chatID, api.ChatTyping)); err != nil {
				t.Log.Warn("failed to send typing action", zap.Int64("chat_id", chatID), zap.Error(err))
			}
		},
	)
	wg.Go(
		func() {
			answerText = t.answer(ctx, text)
		},
	)
	wg.Wait()

	return t.sendMessage(chatID, answerText)
}

func (t *TelegramUsecase) answer(ctx context.Context, text string) string {
	reply, err := t.Relay.Relay(ctx, text)
	if err == nil {
		return reply
	}
	var relayErr *RelayError
	if errors.As(err, &relayErr) {
		return relayErr.Message
	}
	t.Log.Error("unexpected relay error", zap.Error(err))
	return MessageNoResponseFromAI
}

func (t *TelegramUsecase) sendMessage(chatID int64, message string) error {
	if _, err := t.Bot.Send(api.NewMessage(chatID, message)); err != nil {
		return fmt.Errorf("failed to send message to bot: %w", err)
	}
	return nil
}
