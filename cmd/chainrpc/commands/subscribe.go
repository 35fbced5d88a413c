package commands

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/localrivet/chainrpc/client"
)

func newSubscribeCmd(a *app) *cobra.Command {
	var (
		resubscribe bool
		count       int
		unsubscribe string
	)
	cmd := &cobra.Command{
		Use:   "subscribe <method> [params...]",
		Short: "Open a subscription and print notifications until interrupted",
		Example: `  chainrpc subscribe -e ws://localhost:8546 eth_subscribe newHeads
  chainrpc subscribe -e wss://api.mainnet-beta.solana.com slotSubscribe --count 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			notifications := make(chan json.RawMessage, 64)
			sub, err := s.SubscribeMethod(ctx, args[0], parseParams(args[1:]), resubscribe, func(result json.RawMessage, id string) {
				select {
				case notifications <- result:
				default:
					a.logger.Warn("Dropping notification, output is behind", "id", id)
				}
			})
			if err != nil {
				return err
			}
			a.logger.Info("Subscribed", "method", args[0], "id", sub.ID())

			seen := 0
			for {
				select {
				case <-ctx.Done():
					return a.finish(sub.Unsubscribe, unsubscribe)
				case result := <-notifications:
					if err := printJSON(out, result); err != nil {
						return err
					}
					seen++
					if count > 0 && seen >= count {
						return a.finish(sub.Unsubscribe, unsubscribe)
					}
				}
			}
		},
	}
	cmd.Flags().BoolVar(&resubscribe, "resubscribe", false, "resend the subscription after a reconnect")
	cmd.Flags().IntVar(&count, "count", 0, "exit after this many notifications, 0 runs until interrupted")
	cmd.Flags().StringVar(&unsubscribe, "unsubscribe-method", "", "unsubscribe method, derived from the subscribe method when empty")
	return cmd
}

// finish cancels the subscription on the node with a fresh context, since
// the command context may already be done.
func (a *app) finish(unsubscribe func(context.Context, string) (bool, error), method string) error {
	timeout := a.cfg.Timeout
	if timeout <= 0 {
		timeout = client.DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ok, err := unsubscribe(ctx, method)
	if err != nil {
		a.logger.Warn("Unsubscribe failed", "error", err)
		return nil
	}
	a.logger.Debug("Unsubscribed", "ok", ok)
	return nil
}
