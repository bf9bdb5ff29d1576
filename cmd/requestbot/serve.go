package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gratefultolord/prep_requests_bot/internal/bot"
	"github.com/gratefultolord/prep_requests_bot/internal/config"
	"github.com/gratefultolord/prep_requests_bot/internal/db"
	"github.com/gratefultolord/prep_requests_bot/internal/logger"
	"github.com/gratefultolord/prep_requests_bot/internal/telegram"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot with long polling until interrupted",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("cannot create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Creates or repairs the document before the first update arrives.
	if _, err := store.Load(ctx); err != nil {
		return fmt.Errorf("cannot load store: %w", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("cannot create telegram bot: %w", err)
	}

	service := bot.New(
		telegram.NewGateway(botAPI, cfg.ChannelID),
		db.NewSubmissionRepository(store),
		cfg,
		log,
	)

	poller := telegram.NewPoller(botAPI, service, log)
	if err := poller.Setup(); err != nil {
		log.Warn("cannot prepare bot", zap.Error(err))
	}

	log.Info("bot started",
		zap.String("username", botAPI.Self.UserName),
		zap.String("store", cfg.StoreBackend),
		zap.Int("allowed_users", len(cfg.AllowedUsers)),
	)

	if err := poller.Run(ctx); err != nil {
		return err
	}

	log.Info("bot stopped", zap.Int("abandoned_drafts", service.Sessions().Len()))

	return nil
}
