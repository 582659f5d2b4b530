package cli

import (
	"fmt"

	"github.com/provenderie/ledger/internal/application/auth"
	"github.com/spf13/cobra"
)

func newHashCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-code CODE",
		Short: "Genera el hash bcrypt de un código de acceso (AUTH_ADMIN_CODE_HASH, AUTH_CLERK_CODE_HASH)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := auth.HashCode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}
