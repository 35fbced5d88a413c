package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localrivet/chainrpc"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chainrpc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), chainrpc.Version)
			return err
		},
	}
}
