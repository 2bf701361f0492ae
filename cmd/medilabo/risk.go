package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nikkune/MediLabo/internal/domain/risk"
)

func riskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Show a patient's risk level",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")

			res := risk.NewClient(e.channel).Get(cmd.Context(), firstName, lastName)
			if failure, failed := res.Failure(); failed {
				e.notifier.Error(failure.Message)
				return failure
			}
			level := res.Value()
			fmt.Printf("%s (%s)\n", level, level.Color())
			return nil
		},
	}
	nameFlags(cmd)
	return cmd
}
