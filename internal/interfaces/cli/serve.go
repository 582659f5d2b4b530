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

const shutdownTimeout = 10 * time.Second

func newServeCmd(o *rootOptions) *cobra.Command {
	var withCron bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP (y opcionalmente las tareas programadas)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.cfg.ValidateExposure(); err != nil {
				return err
			}
			return o.withApp(cmd.Context(), func(a *App) error {
				log := o.log
				app := a.HTTP()

				if withCron {
					sched, err := a.Scheduler()
					if err != nil {
						return err
					}
					sched.Start()
					defer func() {
						ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
						defer cancel()
						sched.Stop(ctx)
					}()
					log.Info().Strs("jobs", sched.Scheduled()).Msg("tareas programadas activas")
				}

				addr := o.cfg.HTTP.Addr()
				log.Info().
					Str("addr", addr).
					Str("driver", o.cfg.DB.Driver).
					Bool("auth", o.cfg.JWT.Secret != "").
					Msg("iniciando servidor HTTP")

				listenErr := make(chan error, 1)
				go func() {
					listenErr <- app.Listen(addr)
				}()

				quit := make(chan os.Signal, 1)
				signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
				defer signal.Stop(quit)
				select {
				case err := <-listenErr:
					if err != nil {
						log.Error().Err(err).Str("addr", addr).Msg("no se pudo iniciar el servidor HTTP")
						return fmt.Errorf("http: escuchar en %s: %w", addr, err)
					}
					return nil
				case <-quit:
				case <-cmd.Context().Done():
				}
				log.Info().Msg("señal de apagado recibida, cerrando servidor...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := app.ShutdownWithContext(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("apagado del servidor")
				}
				log.Info().Msg("aplicación detenida")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&withCron, "cron", true, "ejecutar también las tareas programadas configuradas")
	return cmd
}
