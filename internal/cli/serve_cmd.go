package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/officeflow/internal/httpapi"
	"github.com/alexanderramin/officeflow/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic escalation sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, addr, interval)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", app.Config.HTTPAddr, "HTTP listen address")
	cmd.Flags().DurationVar(&interval, "interval", app.Config.SweepInterval, "time between escalation sweeps")
	return cmd
}

// serve runs the API server and the sweep loop until ctx is done or the
// listener fails, then shuts both down.
func serve(ctx context.Context, app *App, addr string, interval time.Duration) error {
	logger := app.logger()
	if interval <= 0 {
		interval = time.Minute
	}

	srv := httpapi.NewServer(addr, &httpapi.API{
		Templates:     app.Templates,
		Instances:     app.Instances,
		Notifications: app.Notifications,
		Gatherer:      app.Metrics,
		Logger:        logger,
	})
	runner := service.NewSweepRunner(app.Sweeper, interval, app.Clock, logger)

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		_ = runner.Run(sweepCtx)
	}()

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		srvErr <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-srvErr:
	}

	cancelSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	<-sweepDone

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
