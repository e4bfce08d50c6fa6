package main

import (
	"errors"
	"fmt"
	"strconv"

	"asset-tracker/internal/apiclient"
	"asset-tracker/internal/inventory"
	"asset-tracker/internal/models"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List and manage categories",
	}
	cmd.AddCommand(newCategoryListCmd(a), newCategoryAddCmd(a), newCategoryDeleteCmd(a))
	return cmd
}

func newCategoryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			categories, err := a.client.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), categories)
			}
			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories found.")
				return nil
			}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "NAME"}, rows)
			return nil
		},
	}
}

func newCategoryAddCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			s := inventory.NewSession(a.client)
			if err := s.Load(ctx); err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = models.String(description)
			}
			err := s.AddCategory(ctx, args[0], desc)
			switch {
			case errors.Is(err, inventory.ErrDuplicateCategory):
				return fmt.Errorf("category %q already exists", args[0])
			case err != nil:
				return fmt.Errorf("add category: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category: %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "category description")
	return cmd
}

func newCategoryDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category; its assets become uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			s := inventory.NewSession(a.client)
			s.RequestCategoryDelete(id)
			if !yes && !confirm(cmd, fmt.Sprintf("Delete category %d? Its assets will be uncategorized.", id)) {
				s.CategoryDelete.Cancel()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := s.ConfirmCategoryDelete(ctx); err != nil {
				if apiclient.IsNotFound(err) {
					return fmt.Errorf("category %d not found", id)
				}
				return fmt.Errorf("delete category: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category: %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
