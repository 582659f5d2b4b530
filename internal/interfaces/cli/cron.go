package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newCronCmd(o *rootOptions) *cobra.Command {
	var job string
	cmd := &cobra.Command{
		Use:   "cron",
		Short: "Inicia las tareas programadas o ejecuta una por nombre",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return o.withApp(ctx, func(a *App) error {
				sched, err := a.Scheduler()
				if err != nil {
					return err
				}
				if job != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "ejecutando tarea: %s\n", job)
					return sched.RunJob(ctx, job)
				}
				if len(sched.Scheduled()) == 0 {
					return fmt.Errorf("no hay tareas configuradas (SCHEDULER_LOW_STOCK_CRON, SCHEDULER_SNAPSHOT_CRON)")
				}

				sched.Start()
				fmt.Fprintf(cmd.OutOrStdout(), "tareas activas: %v. Ctrl+C para salir.\n", sched.Scheduled())
				quit := make(chan os.Signal, 1)
				signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
				select {
				case <-quit:
				case <-ctx.Done():
				}
				stopCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				sched.Stop(stopCtx)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&job, "job", "j", "", "ejecutar una sola tarea (low-stock, snapshot) y salir")
	return cmd
}
