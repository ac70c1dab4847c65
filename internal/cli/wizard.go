package cli

import (
	"github.com/alexanderramin/officeflow/internal/cli/formatter"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// officeflowHuhTheme returns a huh theme using the formatter palette.
func officeflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// statusOptions lists the statuses a task may move to from its current one.
func statusOptions(current domain.TaskStatus) []huh.Option[domain.TaskStatus] {
	var opts []huh.Option[domain.TaskStatus]
	for _, s := range domain.TaskStatuses {
		if s == current || !domain.CanTransition(current, s) {
			continue
		}
		opts = append(opts, huh.NewOption(formatter.TaskStatusPill(s), s))
	}
	return opts
}

// wizardTaskStatus asks for a new status and optional notes for task.
// It returns nil when the task has nowhere to go.
func wizardTaskStatus(task *domain.WorkflowTask, status *domain.TaskStatus, notes *string) *huh.Form {
	opts := statusOptions(task.Status)
	if len(opts) == 0 {
		return nil
	}
	*status = opts[0].Value

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.TaskStatus]().
				Title("New status for "+task.Title).
				Options(opts...).
				Value(status),
			huh.NewText().
				Title("Notes (optional)").
				CharLimit(500).
				Value(notes),
		),
	).WithTheme(officeflowHuhTheme()).WithShowHelp(false)
}
