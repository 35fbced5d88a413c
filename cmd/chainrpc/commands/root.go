// Package commands implements the chainrpc command line.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/localrivet/chainrpc/client"
	"github.com/localrivet/chainrpc/config"
	"github.com/localrivet/chainrpc/logx"
)

// app carries what PersistentPreRunE prepared to the subcommands.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	logCloser  io.Closer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "chainrpc",
		Short:        "JSON-RPC client for Ethereum and Solana nodes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a YAML or TOML configuration file")
	flags.StringP("endpoint", "e", "", "node endpoint: http(s)://, ws(s):// or a path ending in .ipc")
	flags.Duration("timeout", client.DefaultRequestTimeout, "per request timeout")
	flags.Duration("dial-timeout", 0, "connection timeout for websocket and ipc endpoints")
	flags.Duration("keep-alive", 0, "websocket ping interval, 0 disables")
	flags.Bool("reconnect", true, "reconnect websocket and ipc endpoints after a drop")
	flags.Duration("reconnect-delay", 0, "delay between reconnect attempts")
	flags.Int("reconnect-max", 0, "maximum reconnect attempts, negative for unlimited")
	flags.StringToString("header", nil, "extra request header as key=value, repeatable")
	flags.String("jwt-secret", "", "path to a hex encoded JWT secret (jwt.hex)")
	flags.String("jwt-client-id", "", "id claim for JWT tokens")
	flags.String("jwk", "", "path to a private JWK used to sign bearer tokens")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", logx.FormatText, "log format: text or json")
	flags.String("log-output", logx.Stderr, "log destination: stdout, stderr or a file path")

	root.AddCommand(
		newClassifyCmd(),
		newCallCmd(a),
		newBatchCmd(a),
		newSubscribeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, closer, err := logx.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logCloser = closer
	return nil
}

// connect opens a session to the configured endpoint.
func (a *app) connect(ctx context.Context) (*client.Session, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := a.cfg.SessionOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, client.WithLogger(a.logger))

	s, err := client.New(ctx, a.cfg.Endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", a.cfg.Endpoint, err)
	}
	a.logger.Debug("Session opened", "endpoint", a.cfg.Endpoint, "transport", s.Transport().Kind().String())
	return s, nil
}

// parseParams reads each argument as JSON when it is valid JSON and as a
// string otherwise, so 0x1 stays a quantity string while 5, true and
// {"to":"0x..."} are sent as typed values.
func parseParams(args []string) []any {
	params := make([]any, 0, len(args))
	for _, arg := range args {
		if json.Valid([]byte(arg)) {
			params = append(params, json.RawMessage(arg))
			continue
		}
		params = append(params, arg)
	}
	return params
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
