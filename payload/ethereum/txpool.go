package ethereum

import "github.com/localrivet/chainrpc/payload"

func TxPoolContent() payload.Payload {
	return payload.Build("txpool_content", nil, nil)
}

func TxPoolContentFrom(address string) payload.Payload {
	return payload.Build("txpool_contentFrom", []any{address}, nil)
}

func TxPoolInspect() payload.Payload {
	return payload.Build("txpool_inspect", nil, nil)
}

func TxPoolStatus() payload.Payload {
	return payload.Build("txpool_status", nil, payload.Struct[TxPoolStatusResult]())
}
