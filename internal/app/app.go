package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/jacobxo0/AIforsikring-sub002/config"
	"github.com/jacobxo0/AIforsikring-sub002/internal/handler"
	"github.com/jacobxo0/AIforsikring-sub002/internal/router"
	"github.com/jacobxo0/AIforsikring-sub002/internal/ui"
	"github.com/jacobxo0/AIforsikring-sub002/internal/usecase"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Run serves the chat endpoint, the chat page and, when a bot token is set,
// the Telegram front until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	completer, err := newCompleter(cfg, log)
	if err != nil {
		return err
	}
	if !completer.Configured() {
		log.Warn("provider credential not configured, chat requests will fail", zap.String("provider", cfg.Relay.Provider))
	}

	relayUsecase := usecase.NewRelayUsecase(
		usecase.RelayUsecaseDeps{
			Completer: completer,
			Log:       log,
		},
		cfg.Relay,
	)

	chatPage, err := ui.NewChatPage(ui.DefaultPage)
	if err != nil {
		return fmt.Errorf("failed to create chat page: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router.New(handler.NewChatHandler(relayUsecase, log), chatPage, log),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
	}

	var telegramUsecase *usecase.TelegramUsecase
	if cfg.Telegram.TelegramAPIToken != "" {
		bot, err := api.NewBotAPI(cfg.Telegram.TelegramAPIToken)
		if err != nil {
			return fmt.Errorf("failed to create new bot: %w", err)
		}
		log.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

		telegramUsecase, err = usecase.NewTelegramUsecase(
			usecase.TelegramUsecaseDeps{
				Relay: relayUsecase,
				Bot:   bot,
				Log:   log,
			},
		)
		if err != nil {
			return fmt.Errorf("failed to create telegram usecase: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var serveErr, telegramErr error
	wg := conc.NewWaitGroup()
	wg.Go(
		func() {
			log.Info(
				"http server listening",
				zap.String("addr", cfg.HTTP.Addr),
				zap.String("provider", cfg.Relay.Provider),
				zap.String("model", completer.Model()),
			)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr = fmt.Errorf("failed to serve http: %w", err)
				cancel()
			}
		},
	)
	wg.Go(
		func() {
			<-ctx.Done()
			log.Info("shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("failed to shut down http server", zap.Error(err))
			}
		},
	)
	if telegramUsecase != nil {
		wg.Go(
			func() {
				if err := telegramUsecase.Run(ctx); err != nil {
					telegramErr = fmt.Errorf("failed to run telegram front: %w", err)
				}
			},
		)
	}

	wg.Wait()
	return errors.Join(serveErr, telegramErr)
}

func newCompleter(cfg *config.Config, log *zap.Logger) (usecase.Completer, error) {
	switch cfg.Relay.Provider {
	case config.ProviderOpenAI:
		return usecase.NewOpenAIUsecase(cfg.OpenAI, log), nil
	case config.ProviderGemini:
		return usecase.NewGeminiUsecase(cfg.Gemini, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Relay.Provider)
	}
}
