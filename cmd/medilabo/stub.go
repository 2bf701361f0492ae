package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nikkune/MediLabo/internal/stub"
)

func stubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stub",
		Short: "Run an in-memory double of the record service",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}

			server := stub.New(e.cfg.APIUsername, e.cfg.APIPassword, e.logger)
			instance := server.Echo()

			go func() {
				if err := instance.Start(":" + e.cfg.StubPort); err != nil && err != http.ErrServerClosed {
					e.logger.Error().Err(err).Msg("stub server stopped")
				}
			}()
			e.logger.Info().Str("port", e.cfg.StubPort).Msg("stub record service listening")

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return instance.Shutdown(ctx)
		},
	}
}
