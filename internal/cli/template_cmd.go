package cli

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/officeflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Browse and load workflow templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateLoadCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			templates, err := app.Templates.ListTemplates(cmd.Context())
			if category != "" {
				templates, err = app.Templates.ListByCategory(cmd.Context(), category)
			}
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates found.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatTemplateList(templates))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list templates in this category")
	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show template nodes and timers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.GetTemplate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(t))
			return nil
		},
	}
}

func newTemplateLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load [DIR]",
		Short: "Load every JSON template in a directory into the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Config.TemplateDir
			if len(args) == 1 {
				dir = args[0]
			}
			report, err := app.Templates.LoadDir(cmd.Context(), dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d template(s) from %s\n", len(report.Loaded), dir)
			for _, id := range report.Loaded {
				fmt.Fprintf(out, "  %s %s\n", formatter.StyleGreen.Render("✔"), id)
			}
			files := make([]string, 0, len(report.Skipped))
			for f := range report.Skipped {
				files = append(files, f)
			}
			sort.Strings(files)
			for _, f := range files {
				fmt.Fprintf(out, "  %s %s: %v\n", formatter.StyleRed.Render("✖"), f, report.Skipped[f])
			}
			return nil
		},
	}
}
