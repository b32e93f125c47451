package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/radutopala/switchboard/internal/discord"
	"github.com/radutopala/switchboard/internal/logging"
	"github.com/radutopala/switchboard/internal/router"
)

func newServeCmd() *cobra.Command {
	var removeCommands bool
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the bot",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(removeCommands)
		},
	}
	cmd.Flags().BoolVar(&removeCommands, "remove-commands", false, "Remove registered commands on shutdown")
	return cmd
}

func serve(removeCommands bool) error {
	cfg, err := configLoad()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting switchboard",
		"guild_id", cfg.DiscordGuildID,
		"granularity", cfg.IntervalGranularity,
		"modal_submit_dispatch", cfg.ModalSubmitDispatch,
	)

	opts := []router.Option{router.WithRateLimit(cfg.RateLimitInterval, cfg.RateLimitBurst)}
	if cfg.ModalSubmitDispatch {
		opts = append(opts, router.WithModalSubmit())
	}
	rt := router.New(logger, opts...)
	discord.NewHandlers(cfg.IntervalGranularity).Register(rt)

	bot, err := newDiscordBot(cfg, rt, logger)
	if err != nil {
		return fmt.Errorf("creating discord bot: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := bot.Start(ctx); err != nil {
		return fmt.Errorf("starting discord bot: %w", err)
	}
	if err := bot.RegisterCommands(ctx); err != nil {
		_ = bot.Stop()
		return fmt.Errorf("registering commands: %w", err)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	if removeCommands {
		if err := bot.RemoveCommands(context.Background()); err != nil {
			logger.Error("removing commands", "error", err)
		}
	}
	if err := bot.Stop(); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return nil
}
