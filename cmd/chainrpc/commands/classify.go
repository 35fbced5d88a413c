package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localrivet/chainrpc/client"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <endpoint>",
		Short: "Print the transport an endpoint selects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := client.Classify(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), kind.String())
			return err
		},
	}
}
