package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"asset-tracker/internal/models"
	"asset-tracker/internal/todolist"

	"github.com/spf13/cobra"
)

func newTodosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo"},
		Short:   "Manage the to-do list",
	}
	cmd.AddCommand(
		newTodoListCmd(a),
		newTodoAddCmd(a),
		newTodoToggleCmd(a),
		newTodoNoteCmd(a),
		newTodoDeleteCmd(a),
	)
	return cmd
}

// todoErr prefers the list's user message over the transport error.
func todoErr(l *todolist.List, err error) error {
	if msg := l.Error(); msg != "" {
		return errors.New(msg)
	}
	return err
}

func printTodos(cmd *cobra.Command, todos []models.Todo) {
	if len(todos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
		return
	}
	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		rows = append(rows, []string{strconv.FormatInt(t.ID, 10), mark, t.Text, orDash(t.Note)})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "DONE", "TASK", "NOTE"}, rows)
}

func newTodoListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			l := todolist.New(a.client)
			if err := l.Load(ctx); err != nil {
				return todoErr(l, err)
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), l.Items())
			}
			printTodos(cmd, l.Items())
			return nil
		},
	}
}

func newTodoAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("task text is required")
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			l := todolist.New(a.client)
			if err := l.Add(ctx, text); err != nil {
				return todoErr(l, err)
			}
			created := l.Items()[0]
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", created.ID, created.Text)
			return nil
		},
	}
}

// loadedTodo loads the list so single-item commands can find their target.
func loadedTodo(cmd *cobra.Command, a *app, arg string) (*todolist.List, int64, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, 0, err
	}
	ctx, cancel := a.context(cmd)
	defer cancel()
	l := todolist.New(a.client)
	if err := l.Load(ctx); err != nil {
		return nil, 0, todoErr(l, err)
	}
	return l, id, nil
}

func findTodo(l *todolist.List, id int64) (models.Todo, bool) {
	for _, t := range l.Items() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Todo{}, false
}

func newTodoToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, id, err := loadedTodo(cmd, a, args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			if err := l.Toggle(ctx, id); err != nil {
				if errors.Is(err, todolist.ErrUnknownTodo) {
					return fmt.Errorf("task %d not found", id)
				}
				return todoErr(l, err)
			}
			t, _ := findTodo(l, id)
			state := "not done"
			if t.Done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked %s\n", id, state)
			return nil
		},
	}
}

func newTodoNoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> [note...]",
		Short: "Set a task's note; no note text clears it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, id, err := loadedTodo(cmd, a, args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			if err := l.SaveNote(ctx, id, strings.Join(args[1:], " ")); err != nil {
				if errors.Is(err, todolist.ErrUnknownTodo) {
					return fmt.Errorf("task %d not found", id)
				}
				return todoErr(l, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved note for task %d\n", id)
			return nil
		},
	}
}

func newTodoDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Delete task %d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			l := todolist.New(a.client)
			if err := l.Delete(ctx, id); err != nil {
				return todoErr(l, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
