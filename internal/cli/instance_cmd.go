package cli

import (
	"fmt"

	"github.com/alexanderramin/officeflow/internal/cli/formatter"
	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/spf13/cobra"
)

func newInstanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instance",
		Aliases: []string{"inst"},
		Short:   "Start and track workflow instances",
	}

	cmd.AddCommand(
		newInstanceCreateCmd(app),
		newInstanceListCmd(app),
		newInstanceShowCmd(app),
		newInstanceCancelCmd(app),
	)

	return cmd
}

func newInstanceCreateCmd(app *App) *cobra.Command {
	var (
		name, description, start, createdBy string
	)
	cmd := &cobra.Command{
		Use:   "create TEMPLATE_ID",
		Short: "Instantiate a template and schedule its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.CreateInstanceRequest{
				TemplateID:  args[0],
				Name:        name,
				Description: description,
				CreatedBy:   createdBy,
			}
			if start != "" {
				t, err := parseTimeFlag(start)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				req.StartTime = t
			}

			inst, err := app.Instances.CreateInstance(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created instance %s (%d tasks)\n", formatter.Bold(inst.ID), len(inst.Tasks))
			fmt.Fprintln(out, formatter.FormatInstanceShow(inst, app.now()))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "instance name (defaults to the template name)")
	cmd.Flags().StringVar(&description, "description", "", "instance description")
	cmd.Flags().StringVar(&start, "start", "", "schedule start time (RFC 3339 or \"2006-01-02 15:04\", default now)")
	cmd.Flags().StringVar(&createdBy, "by", "", "who started the workflow")
	return cmd
}

func newInstanceListCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflow instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter contract.InstanceFilter
			if status != "" {
				s := domain.InstanceStatus(status)
				if !s.Valid() {
					return fmt.Errorf("unknown instance status %q", status)
				}
				filter.Status = &s
			}

			instances, err := app.Instances.GetInstances(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(instances) == 0 {
				fmt.Fprintln(out, "No instances found.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatInstanceList(instances))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, completed, cancelled)")
	return cmd
}

func newInstanceShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an instance and its task timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := resolveInstance(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInstanceShow(inst, app.now()))
			return nil
		},
	}
}

func newInstanceCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel an active instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := resolveInstance(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			inst, err = app.Instances.CancelInstance(cmd.Context(), inst.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s %s\n", inst.Name, formatter.Dim(inst.ID))
			return nil
		},
	}
}
