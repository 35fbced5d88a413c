package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/localrivet/chainrpc/payload"
)

// batchEntry is one line of the batch input.
type batchEntry struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// batchOutput is printed per entry, in input order.
type batchOutput struct {
	Method string `json:"method"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file]",
		Short: "Send a JSON array of {method, params} objects as one batch",
		Long: `batch reads an array such as
  [{"method":"eth_chainId"},{"method":"eth_getBalance","params":["0x...","latest"]}]
from file, or from stdin when no file or "-" is given, and prints one
result or error per entry in the same order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				input = f
			}
			ps, err := readBatch(input)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			results, err := s.SendBatch(ctx, ps...)
			if err != nil {
				return err
			}
			out := make([]batchOutput, len(results))
			for i, item := range results {
				out[i].Method = ps[i].Method
				if item.Err != nil {
					out[i].Error = item.Err.Error()
					continue
				}
				out[i].Result = item.Value
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func readBatch(r io.Reader) ([]payload.Payload, error) {
	var entries []batchEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("invalid batch input: %w", err)
	}
	ps := make([]payload.Payload, 0, len(entries))
	for i, e := range entries {
		if e.Method == "" {
			return nil, fmt.Errorf("batch entry %d has no method", i)
		}
		params := make([]any, len(e.Params))
		for j, p := range e.Params {
			params[j] = p
		}
		ps = append(ps, payload.Build(e.Method, params, nil))
	}
	return ps, nil
}
