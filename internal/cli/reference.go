package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"promptdeck/internal/format"
	"promptdeck/internal/model"
)

func newDivisionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "divisions",
		Short: "Division reference data for the filter rail",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active divisions in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			ds, err := st.ListDivisions(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: divisionList(ds)})
		},
	})

	var title string
	var order int
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a division",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			d := model.Division{Name: strings.TrimSpace(args[0]), FullTitle: title, SortOrder: order, IsActive: true}
			if err := st.UpsertDivision(cmd.Context(), d); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: d, Hints: []string{"promptdeck divisions list"}})
		},
	}
	add.Flags().StringVar(&title, "title", "", "Full display title")
	add.Flags().IntVar(&order, "order", 0, "Sort position")
	cmd.AddCommand(add)
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Category reference data for the filter rail",
	}

	var div string
	list := &cobra.Command{
		Use:   "list",
		Short: "List active categories, optionally only those of one division",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			cs, err := st.ListCategories(cmd.Context(), div)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: categoryList(cs)})
		},
	}
	list.Flags().StringVar(&div, "div", "", "Only categories that apply to this division")
	cmd.AddCommand(list)

	var divs []string
	var order int
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			c := model.Category{
				Name:      strings.TrimSpace(args[0]),
				Divisions: strings.Join(divs, ","),
				SortOrder: order,
				IsActive:  true,
			}
			if err := st.UpsertCategory(cmd.Context(), c); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: c, Hints: []string{"promptdeck categories list"}})
		},
	}
	add.Flags().StringSliceVar(&divs, "div", nil, "Divisions the category applies to (repeatable or comma-separated)")
	add.Flags().IntVar(&order, "order", 0, "Sort position")
	cmd.AddCommand(add)
	return cmd
}
