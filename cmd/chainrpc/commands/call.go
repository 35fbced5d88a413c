package commands

import (
	"github.com/spf13/cobra"
)

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <method> [params...]",
		Short: "Send one request and print its result",
		Example: `  chainrpc call -e http://localhost:8545 eth_getBalance 0xc94770007dda54cF92009BFF0dE90c06F603a09f latest
  chainrpc call -e https://api.mainnet-beta.solana.com getSlot '{"commitment":"finalized"}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.SendMethod(ctx, args[0], parseParams(args[1:])...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}
