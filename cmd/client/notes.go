package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"todo-notes/internal/confirm"
	"todo-notes/internal/model"
	"todo-notes/internal/tui"
	"todo-notes/internal/view"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes",
}

var (
	flagNoteFilter string
	flagNoteType   string
)

func init() {
	notesListCmd.Flags().StringVarP(&flagNoteFilter, "filter", "f", "all", "all, important, daily or general")
	notesAddCmd.Flags().StringVarP(&flagNoteType, "type", "t", string(model.NoteGeneral), "important, daily or general")
	notesRmCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "delete without confirmation")

	notesCmd.AddCommand(notesListCmd, notesShowCmd, notesAddCmd, notesRmCmd)
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		notes, err := api.ListNotes(ctx)
		if err != nil {
			return err
		}

		filter := view.ParseNoteFilter(flagNoteFilter)
		lines := []string{tui.NoteCounters(view.CountNotes(notes)), ""}
		visible := view.FilterNotes(notes, filter)
		if len(visible) == 0 {
			lines = append(lines, filter.Empty())
		}
		for _, n := range visible {
			lines = append(lines, fmt.Sprintf("%4d  %s", n.ID, tui.NoteLine(n, cfg.Client.Locale)))
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Panel(lines))
		return nil
	},
}

var notesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note with its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		note, err := api.GetNote(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Panel([]string{tui.NoteLine(note, cfg.Client.Locale), "", note.Content}))
		return nil
	},
}

var notesAddCmd = &cobra.Command{
	Use:   "add <title> <content>",
	Short: "Add a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		note, err := api.CreateNote(ctx, args[0], args[1], model.NoteType(flagNoteType))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf("added #%d %s", note.ID, note.Title)))
		return nil
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ok, err := gate(cmd).Confirm(cmd.Context(), confirm.Prompt{
			Title:   "Hapus catatan #" + strconv.FormatInt(id, 10),
			Message: "Apakah Anda yakin ingin menghapus catatan ini?",
		})
		if err != nil || !ok {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := api.DeleteNote(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Success(tui.NoteDeletedNotice))
		return nil
	},
}
