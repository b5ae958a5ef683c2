package session

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"portfolioquest/internal/config"
	"portfolioquest/internal/content"
	"portfolioquest/internal/nav"
)

// Options is what every session in a process shares: the loaded documents
// and the tuning from config.
type Options struct {
	Graph          *nav.Graph
	Content        *content.Library
	LoadErr        error
	StartViewpoint string
	Duration       time.Duration
	FrameInterval  time.Duration
	Tools          []string
	Trigger        string
	Log            zerolog.Logger
}

// Load reads the navigation and content documents named by cfg. Load failures
// do not abort: they are kept in LoadErr so every session shows the failure
// instead of the process exiting.
func Load(cfg config.Config, log zerolog.Logger) Options {
	opts := Options{
		StartViewpoint: cfg.StartViewpoint,
		Duration:       cfg.Transition.Duration,
		FrameInterval:  cfg.Frame.Interval,
		Tools:          cfg.Telescope.Tools,
		Trigger:        cfg.Telescope.Trigger,
		Log:            log,
	}

	g, err := nav.Load(cfg.NavigationFile, log)
	if err != nil {
		log.Error().Err(err).Msg("navigation document failed to load")
		opts.LoadErr = err
	} else {
		opts.Graph = g
		log.Info().Int("viewpoints", g.Len()).Str("start", g.Start().ID).Msg("navigation loaded")
	}

	lib, err := content.Load(cfg.ContentFile)
	if err != nil {
		log.Error().Err(err).Msg("content document failed to load")
		opts.LoadErr = errors.Join(opts.LoadErr, err)
	} else {
		opts.Content = lib
	}
	return opts
}
