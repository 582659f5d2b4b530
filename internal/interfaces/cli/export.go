package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	var shop, out string
	cmd := &cobra.Command{
		Use:       "export csv|pdf",
		Short:     "Exporta el stock de una tienda a CSV o PDF",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"csv", "pdf"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return o.withApp(ctx, func(a *App) error {
				shopID, err := resolveShop(ctx, a, shop)
				if err != nil {
					return err
				}
				var (
					body []byte
					name string
				)
				if args[0] == "pdf" {
					body, name, err = a.Export.StockPDF(ctx, shopID)
				} else {
					body, name, err = a.Export.StockCSV(ctx, shopID)
				}
				if err != nil {
					return err
				}
				if out == "-" {
					_, err = cmd.OutOrStdout().Write(body)
					return err
				}
				path := out
				if path == "" {
					path = name
				} else if st, serr := os.Stat(path); serr == nil && st.IsDir() {
					path = filepath.Join(path, name)
				}
				if err := os.WriteFile(path, body, 0o644); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", path, len(body))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&shop, "shop", "", "tienda (id o etiqueta)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "archivo o directorio destino; - para stdout")
	return cmd
}
