// Package cli expone el libro por línea de comandos (cobra): servidor HTTP,
// migraciones, consultas de stock y ventas, exports y tareas programadas.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/provenderie/ledger/pkg/config"
	"github.com/provenderie/ledger/pkg/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFiles []string
	cfg      *config.Config
	log      *logger.Logger
}

// NewRootCmd construye el árbol de comandos.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "provenderie",
		Short:         "Libro de inventario de granos y piensos por tienda",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.envFiles...)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logger.New(logger.Config{
				Env:    cfg.App.Env,
				Level:  cfg.App.LogLevel,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "archivos .env a cargar (por defecto .env)")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newStockCmd(opts),
		newMoveCmd(opts),
		newAdjustCmd(opts),
		newSalesCmd(opts),
		newShopsCmd(opts),
		newProductsCmd(opts),
		newExportCmd(opts),
		newCronCmd(opts),
		newHashCodeCmd(),
	)
	return root
}

// Execute corre el CLI y devuelve el código de salida.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		_, _ = io.WriteString(os.Stderr, "error: "+err.Error()+"\n")
		return 1
	}
	return 0
}

// withApp construye la App, ejecuta fn y la cierra.
func (o *rootOptions) withApp(ctx context.Context, fn func(*App) error) error {
	a, err := Build(ctx, o.cfg, o.log)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}
