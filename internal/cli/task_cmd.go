package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/officeflow/internal/cli/formatter"
	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/spf13/cobra"
)

var errStatusRequired = errors.New("--status is required when not running interactively")

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Update tasks and view work queues",
	}

	cmd.AddCommand(
		newTaskStatusCmd(app),
		newTaskAssignedCmd(app),
	)

	return cmd
}

func newTaskStatusCmd(app *App) *cobra.Command {
	var status, notes string
	cmd := &cobra.Command{
		Use:   "status INSTANCE_ID TASK",
		Short: "Change a task's status",
		Long: "Change a task's status. TASK is a task id or the template node id.\n" +
			"Without --status an interactive picker offers the reachable statuses.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			inst, err := resolveInstance(ctx, app, args[0])
			if err != nil {
				return err
			}
			task, err := resolveTask(inst, args[1])
			if err != nil {
				return err
			}

			req := contract.SetTaskStatusRequest{InstanceID: inst.ID, TaskID: task.ID}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}

			if status != "" {
				if req.Status, err = domain.ParseTaskStatus(status); err != nil {
					return err
				}
			} else {
				if !app.interactive() {
					return errStatusRequired
				}
				form := wizardTaskStatus(task, &req.Status, &notes)
				if form == nil {
					return fmt.Errorf("task %q is %s and cannot change status", task.Title, task.Status)
				}
				if err := form.Run(); err != nil {
					return err
				}
				if notes != "" {
					req.Notes = &notes
				}
			}

			updated, err := app.Instances.SetTaskStatus(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", updated.Title, formatter.TaskStatusPill(updated.Status))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "new status (pending, in_progress, completed, escalated, warning)")
	cmd.Flags().StringVar(&notes, "notes", "", "replace the task notes")
	return cmd
}

func newTaskAssignedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assigned LEVEL",
		Short: "Show open tasks assigned to a position level, most urgent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := domain.ParsePositionLevel(args[0])
			if err != nil {
				return err
			}
			queue, err := app.Instances.ListAssigned(cmd.Context(), level)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAssignedQueue(level, queue, app.now()))
			return nil
		},
	}
}
