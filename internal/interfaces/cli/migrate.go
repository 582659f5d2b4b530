package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea o actualiza el esquema y muestra su versión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd.Context(), func(a *App) error {
				v, err := a.DB.SchemaVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "esquema %s en versión %d\n", a.DB.Driver(), v)
				return nil
			})
		},
	}
}
