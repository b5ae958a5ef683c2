package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"portfolioquest/internal/config"
	"portfolioquest/internal/session"
	"portfolioquest/internal/tui"
)

const defaultPlayLog = "quest.log"

func playCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Explore the world in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd.Context(), *cfg)
		},
	}
}

func runPlay(ctx context.Context, cfg config.Config) error {
	// The screen owns the terminal, so logs always go to a file.
	if cfg.LogFile == "" {
		cfg.LogFile = defaultPlayLog
	}
	log, closer, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	sess, err := session.New("terminal", nil, session.Load(cfg, log))
	if err != nil {
		return err
	}
	if err := sess.Mount(); err != nil {
		log.Warn().Err(err).Msg("starting without a world")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Info().Msg("terminal session started")
	if err := tui.New(screen, sess, cfg.Frame.Interval, log).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
