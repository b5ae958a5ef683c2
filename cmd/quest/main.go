package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"portfolioquest/internal/config"
	"portfolioquest/internal/logging"
)

func main() {
	var (
		configPath string
		cfg        config.Config
	)

	rootCmd := &cobra.Command{
		Use:           "quest",
		Short:         "Explore a portfolio as a world of rooms, on the web or in a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (json, yaml or toml)")

	rootCmd.AddCommand(serveCmd(&cfg))
	rootCmd.AddCommand(playCmd(&cfg))
	rootCmd.AddCommand(validateCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		logFailure(os.Stderr, err)
		os.Exit(1)
	}
}

func logFailure(w io.Writer, err error) {
	log := logging.New(logging.Console(w), "error")
	log.Error().Err(err).Msg("quest failed")
}

// newLogger writes to cfg.LogFile when set and to fallback otherwise. The
// returned closer releases the file.
func newLogger(cfg config.Config, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return logging.New(fallback, cfg.LogLevel), io.NopCloser(nil), nil
	}
	f, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return logging.New(f, cfg.LogLevel), f, nil
}
