package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"printk/internal/bot"
	"printk/internal/config"
	"printk/internal/params"
	"printk/internal/session"
	"printk/pkg/logger"
)

// ENTRY POINT

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	if err := cfg.ValidateBot(); err != nil {
		zapLogger.Fatal("Invalid bot configuration", zap.Error(err))
	}

	// Parameters
	store := params.NewStore(cfg.ParamsPath, zapLogger)
	set, err := loadParams(store, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to load parameters", zap.Error(err))
	}

	sess := session.New(store, set, cfg.DefaultMargin, zapLogger)

	// Telegram
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	api, err := connectBot(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Telegram", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	tgBot := bot.New(api, sess, cfg.OperatorChatID, zapLogger)
	if err := tgBot.Start(ctx, updates); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}

// loadParams falls back to the defaults when the record is unreadable as
// JSON; the next save replaces it.
func loadParams(store *params.Store, log *zap.Logger) (params.Set, error) {
	set, err := store.Load()
	if errors.Is(err, params.ErrCorruptRecord) {
		log.Warn("Parameter record is corrupt, using defaults",
			zap.String("path", store.Path()),
			zap.Error(err))
		return params.Defaults(), nil
	}
	return set, err
}

func connectBot(ctx context.Context, cfg *config.Config, log *zap.Logger) (*tgbotapi.BotAPI, error) {
	const operation = "main.connectBot"

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.StartupMaxElapsed
	retryPolicy.MaxInterval = 15 * time.Second

	var api *tgbotapi.BotAPI

	log.Info("Connecting to Telegram...")

	err := backoff.RetryNotify(
		func() error {
			var err error
			api, err = tgbotapi.NewBotAPI(cfg.TelegramToken)
			if err != nil {
				var apiErr *tgbotapi.Error
				if errors.As(err, &apiErr) && apiErr.Code == 401 {
					// A rejected token will not get better with retries.
					return backoff.Permanent(fmt.Errorf("create bot API: %w", err))
				}
				return fmt.Errorf("create bot API: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, next time.Duration) {
			log.Warn("Telegram connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	api.Debug = cfg.BotDebug

	log.Info("Bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID))

	return api, nil
}
