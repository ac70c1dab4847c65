package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/officeflow/internal/config"
	"github.com/alexanderramin/officeflow/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Templates     service.TemplateService
	Instances     service.InstanceService
	Notifications service.NotificationService
	Sweeper       service.SweepService

	Config  config.Config
	Logger  *slog.Logger
	Clock   service.Clock
	Metrics prometheus.Gatherer

	// IsInteractive reports whether stdin is a terminal that can drive forms.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now().UTC()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "officeflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "officeflow",
		Short:         "Workflow task scheduling and escalation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newTemplateCmd(app),
		newInstanceCmd(app),
		newTaskCmd(app),
		newSweepCmd(app),
		newNotifyCmd(app),
	)

	return root
}
