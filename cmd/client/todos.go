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

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "Manage todos",
}

var (
	flagTodoFilter string

	flagTodoAddDescription string

	flagTodoEditTitle       string
	flagTodoEditDescription string
)

func init() {
	todosListCmd.Flags().StringVarP(&flagTodoFilter, "filter", "f", "all", "all, active or completed")
	todosAddCmd.Flags().StringVarP(&flagTodoAddDescription, "description", "d", "", "optional description")
	todosEditCmd.Flags().StringVar(&flagTodoEditTitle, "title", "", "new title")
	todosEditCmd.Flags().StringVarP(&flagTodoEditDescription, "description", "d", "", "new description, empty clears it")
	todosRmCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "delete without confirmation")

	todosCmd.AddCommand(todosListCmd, todosAddCmd, todosDoneCmd, todosUndoneCmd, todosEditCmd, todosRmCmd)
}

var todosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		todos, err := api.ListTodos(ctx)
		if err != nil {
			return err
		}

		filter := view.ParseTodoFilter(flagTodoFilter)
		lines := []string{tui.TodoCounters(view.CountTodos(todos)), ""}
		visible := view.FilterTodos(todos, filter)
		if len(visible) == 0 {
			lines = append(lines, filter.Empty())
		}
		for _, t := range visible {
			lines = append(lines, fmt.Sprintf("%4d  %s", t.ID, tui.TodoLine(t)))
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Panel(lines))
		return nil
	},
}

var todosAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		var description *string
		if cmd.Flags().Changed("description") {
			description = &flagTodoAddDescription
		}
		todo, err := api.CreateTodo(ctx, args[0], description)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf("added #%d %s", todo.ID, todo.Title)))
		return nil
	},
}

var todosDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  setCompleted(true),
}

var todosUndoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Mark a todo as active",
	Args:  cobra.ExactArgs(1),
	RunE:  setCompleted(false),
}

func setCompleted(completed bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		todo, err := api.UpdateTodo(ctx, id, model.TodoUpdate{Completed: model.Set(completed)})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.TodoLine(todo))
		return nil
	}
}

var todosEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change title or description of a todo",
	Long: `Only the flags that are passed are sent to the server.
An empty --description clears the description.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var update model.TodoUpdate
		if cmd.Flags().Changed("title") {
			update.Title = model.Set(flagTodoEditTitle)
		}
		if cmd.Flags().Changed("description") {
			update.Description = model.Set(flagTodoEditDescription)
		}
		if update.IsEmpty() {
			return fmt.Errorf("nothing to change, pass --title or --description")
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		todo, err := api.UpdateTodo(ctx, id, update)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.TodoLine(todo))
		return nil
	},
}

var todosRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ok, err := gate(cmd).Confirm(cmd.Context(), confirm.Prompt{
			Title:   "Delete todo #" + strconv.FormatInt(id, 10),
			Message: "Are you sure you want to delete this todo?",
		})
		if err != nil || !ok {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := api.DeleteTodo(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Success("Todo deleted successfully"))
		return nil
	},
}
