package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nikkune/MediLabo/internal/domain/patient"
	"github.com/Nikkune/MediLabo/internal/platform/api"
)

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List and edit patient records",
	}
	cmd.AddCommand(patientsListCmd())
	cmd.AddCommand(patientsCreateCmd())
	cmd.AddCommand(patientsUpdateCmd())
	cmd.AddCommand(patientsDeleteCmd())
	return cmd
}

func newGrid(e *env) *patient.Grid {
	return patient.NewGrid(patient.NewClient(e.channel), e.notifier, e.logger)
}

func patientsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			grid := newGrid(e)
			if err := grid.Fetch(cmd.Context()); err != nil {
				return err
			}
			renderRows(grid.Rows())
			return nil
		},
	}
}

func renderRows(rows []patient.Row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LAST NAME\tFIRST NAME\tBIRTH DATE\tGENDER\tADDRESS\tPHONE NUMBER")
	for _, row := range rows {
		birth := ""
		if row.BirthDate != nil {
			birth = row.BirthDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.LastName, row.FirstName, birth, row.Gender, row.Address, row.PhoneNumber)
	}
	w.Flush()
}

// patientFlags registers the editable fields shared by create and update.
func patientFlags(cmd *cobra.Command) {
	cmd.Flags().String("birth-date", "", "birth date (yyyy-mm-dd)")
	cmd.Flags().String("gender", "", "gender (M or F)")
	cmd.Flags().String("address", "", "postal address")
	cmd.Flags().String("phone", "", "phone number (xxx-xxx-xxxx)")
}

// applyPatientFlags copies the flags the user actually set onto the draft.
func applyPatientFlags(cmd *cobra.Command, draft *patient.Row) error {
	if cmd.Flags().Changed("birth-date") {
		raw, _ := cmd.Flags().GetString("birth-date")
		if raw == "" {
			draft.BirthDate = nil
		} else {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fmt.Errorf("invalid birth date %q: %w", raw, err)
			}
			draft.BirthDate = api.NewTime(parsed)
		}
	}
	if cmd.Flags().Changed("gender") {
		draft.Gender, _ = cmd.Flags().GetString("gender")
	}
	if cmd.Flags().Changed("address") {
		draft.Address, _ = cmd.Flags().GetString("address")
	}
	if cmd.Flags().Changed("phone") {
		draft.PhoneNumber, _ = cmd.Flags().GetString("phone")
	}
	return nil
}

func patientsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")

			grid := newGrid(e)
			id, err := grid.AddRow()
			if err != nil {
				return err
			}
			draft, err := grid.Draft(id)
			if err != nil {
				return err
			}
			draft.FirstName = firstName
			draft.LastName = lastName
			if err := applyPatientFlags(cmd, draft); err != nil {
				return err
			}
			return grid.Save(cmd.Context(), id)
		},
	}
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	patientFlags(cmd)
	return cmd
}

func patientsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit an existing patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")

			grid := newGrid(e)
			if err := grid.Fetch(cmd.Context()); err != nil {
				return err
			}
			var target *patient.Row
			for _, row := range grid.Rows() {
				if row.FirstName == firstName && row.LastName == lastName {
					r := row
					target = &r
					break
				}
			}
			if target == nil {
				return fmt.Errorf("no patient named %s %s", firstName, lastName)
			}
			if err := grid.Edit(target.ID); err != nil {
				return err
			}
			draft, err := grid.Draft(target.ID)
			if err != nil {
				return err
			}
			if err := applyPatientFlags(cmd, draft); err != nil {
				return err
			}
			return grid.Save(cmd.Context(), target.ID)
		},
	}
	cmd.Flags().String("first-name", "", "first name (identity, not editable)")
	cmd.Flags().String("last-name", "", "last name (identity, not editable)")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	patientFlags(cmd)
	return cmd
}

func patientsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			yes, _ := cmd.Flags().GetBool("yes")

			grid := newGrid(e)
			return grid.Delete(cmd.Context(), firstName, lastName, confirmOnTerminal(yes))
		},
	}
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	return cmd
}
