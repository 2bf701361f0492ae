package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nikkune/MediLabo/internal/domain/note"
	"github.com/Nikkune/MediLabo/internal/domain/risk"
	"github.com/Nikkune/MediLabo/internal/format"
)

func notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Read and edit a patient's diagnostic notes",
	}
	cmd.AddCommand(notesListCmd())
	cmd.AddCommand(notesAddCmd())
	cmd.AddCommand(notesEditCmd())
	cmd.AddCommand(notesDeleteCmd())
	return cmd
}

func nameFlags(cmd *cobra.Command) {
	cmd.Flags().String("first-name", "", "patient first name")
	cmd.Flags().String("last-name", "", "patient last name")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
}

func newBoard(e *env, cmd *cobra.Command) *note.Board {
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	return note.NewBoard(
		note.NewClient(e.channel),
		risk.NewClient(e.channel),
		e.notifier,
		e.logger,
		firstName, lastName,
	)
}

func renderBoard(board *note.Board, firstName, lastName string) {
	fmt.Printf("Notes for %s %s  [%s]\n\n", lastName, firstName, board.Risk())
	if len(board.Notes()) == 0 {
		fmt.Println("No notes found.")
		return
	}
	now := time.Now()
	for _, n := range board.Notes() {
		fmt.Printf("%s\n  Created %s, modified %s  (id %s)\n\n",
			n.Note,
			format.Relative(n.CreatedAt.Time, now),
			format.Relative(n.UpdatedAt.Time, now),
			n.ID)
	}
}

func notesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a patient's notes and risk level",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			board := newBoard(e, cmd)
			if err := board.Fetch(cmd.Context()); err != nil {
				return err
			}
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			renderBoard(board, firstName, lastName)
			return nil
		},
	}
	nameFlags(cmd)
	return cmd
}

func notesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note to a patient's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			content, _ := cmd.Flags().GetString("content")
			return newBoard(e, cmd).Create(cmd.Context(), content)
		},
	}
	nameFlags(cmd)
	cmd.Flags().String("content", "", "note text")
	cmd.MarkFlagRequired("content")
	return cmd
}

func notesEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Rewrite an existing note",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("id")
			content, _ := cmd.Flags().GetString("content")
			return newBoard(e, cmd).Update(cmd.Context(), id, content)
		},
	}
	nameFlags(cmd)
	cmd.Flags().String("id", "", "note id")
	cmd.Flags().String("content", "", "note text")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("content")
	return cmd
}

func notesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("id")
			yes, _ := cmd.Flags().GetBool("yes")
			return newBoard(e, cmd).Delete(cmd.Context(), id, confirmOnTerminal(yes))
		},
	}
	nameFlags(cmd)
	cmd.Flags().String("id", "", "note id")
	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	cmd.MarkFlagRequired("id")
	return cmd
}
