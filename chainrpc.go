// Package chainrpc is a JSON-RPC 2.0 client for blockchain nodes.
//
// # Overview
//
// A session is opened against an endpoint and picks its transport from the
// endpoint form: http(s):// URLs use HTTP POST, ws(s):// URLs a persistent
// websocket and paths ending in .ipc a unix domain socket. Requests are
// stamped with monotonically increasing ids, batches are correlated back to
// their payloads by id, and subscription notifications are routed to the
// subscription they belong to, surviving reconnects when asked to.
//
// # Organization
//
//   - github.com/localrivet/chainrpc/client: sessions, batches and subscriptions
//   - github.com/localrivet/chainrpc/payload: method payloads and result formatters,
//     with Ethereum and Solana builders in payload/ethereum and payload/solana
//   - github.com/localrivet/chainrpc/rpc: typed facades over a session
//   - github.com/localrivet/chainrpc/transport: HTTP, websocket and IPC transports
//   - github.com/localrivet/chainrpc/auth: bearer, basic, header and JWT credentials
//
// # Basic Usage
//
//	s, err := client.New(ctx, "wss://mainnet.example.org/ws")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	v, err := s.Send(ctx, ethereum.GetBalance("0xc94770007dda54cF92009BFF0dE90c06F603a09f", ethereum.Latest))
//	balance := v.(*big.Int)
//
//	sub, err := s.Subscribe(ctx, ethereum.Subscribe(ethereum.NewHeads, nil), true,
//		func(result json.RawMessage, id string) {
//			fmt.Println(string(result))
//		})
//
// Batches keep submission order regardless of reply order:
//
//	results, err := s.SendBatch(ctx, ethereum.ChainID(), ethereum.BlockNumber())
package chainrpc

// Version of the library.
const Version = "0.1.0"
