package solana

import (
	"github.com/localrivet/chainrpc/payload"
)

// Subscription ids returned by the *Subscribe methods are integers.
var subscriptionID = payload.Uint64

func AccountSubscribe(address string, config Config) payload.Payload {
	return payload.Build("accountSubscribe", params([]any{address}, config), subscriptionID)
}

func AccountUnsubscribe(id uint64) payload.Payload {
	return payload.Build("accountUnsubscribe", []any{id}, payload.Bool)
}

// BlockSubscribe takes "all" or {"mentionsAccountOrProgram": address}.
func BlockSubscribe(filter any, config Config) payload.Payload {
	return payload.Build("blockSubscribe", params([]any{filter}, config), subscriptionID)
}

func BlockUnsubscribe(id uint64) payload.Payload {
	return payload.Build("blockUnsubscribe", []any{id}, payload.Bool)
}

// LogsSubscribe takes "all", "allWithVotes" or {"mentions": [address]}.
func LogsSubscribe(filter any, config Config) payload.Payload {
	return payload.Build("logsSubscribe", params([]any{filter}, config), subscriptionID)
}

func LogsUnsubscribe(id uint64) payload.Payload {
	return payload.Build("logsUnsubscribe", []any{id}, payload.Bool)
}

func ProgramSubscribe(programID string, config Config) payload.Payload {
	return payload.Build("programSubscribe", params([]any{programID}, config), subscriptionID)
}

func ProgramUnsubscribe(id uint64) payload.Payload {
	return payload.Build("programUnsubscribe", []any{id}, payload.Bool)
}

func RootSubscribe() payload.Payload {
	return payload.Build("rootSubscribe", nil, subscriptionID)
}

func RootUnsubscribe(id uint64) payload.Payload {
	return payload.Build("rootUnsubscribe", []any{id}, payload.Bool)
}

func SignatureSubscribe(signature string, config Config) payload.Payload {
	return payload.Build("signatureSubscribe", params([]any{signature}, config), subscriptionID)
}

func SignatureUnsubscribe(id uint64) payload.Payload {
	return payload.Build("signatureUnsubscribe", []any{id}, payload.Bool)
}

func SlotSubscribe() payload.Payload {
	return payload.Build("slotSubscribe", nil, subscriptionID)
}

func SlotUnsubscribe(id uint64) payload.Payload {
	return payload.Build("slotUnsubscribe", []any{id}, payload.Bool)
}

func VoteSubscribe() payload.Payload {
	return payload.Build("voteSubscribe", nil, subscriptionID)
}

func VoteUnsubscribe(id uint64) payload.Payload {
	return payload.Build("voteUnsubscribe", []any{id}, payload.Bool)
}
