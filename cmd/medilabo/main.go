package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Nikkune/MediLabo/internal/config"
	"github.com/Nikkune/MediLabo/internal/platform/api"
	"github.com/Nikkune/MediLabo/internal/platform/notify"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medilabo",
		Short: "MediLabo clinical record client",
	}

	rootCmd.AddCommand(patientsCmd())
	rootCmd.AddCommand(notesCmd())
	rootCmd.AddCommand(riskCmd())
	rootCmd.AddCommand(stubCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env bundles everything a command needs to talk to the service.
type env struct {
	cfg      *config.Config
	logger   zerolog.Logger
	channel  *api.Channel
	notifier notify.Notifier
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	channel := api.NewChannel(cfg.APIBaseURL, cfg.APIUsername, cfg.APIPassword, cfg.Timeout(), logger)
	return &env{
		cfg:      cfg,
		logger:   logger,
		channel:  channel,
		notifier: &notify.Console{Out: os.Stdout},
	}, nil
}

// confirmOnTerminal prompts on stdin; skip short-circuits to yes for --yes
// runs and scripts.
func confirmOnTerminal(skip bool) func(prompt string) bool {
	return func(prompt string) bool {
		if skip {
			return true
		}
		fmt.Printf("%s [y/N]: ", prompt)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
