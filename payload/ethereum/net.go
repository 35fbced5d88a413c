package ethereum

import "github.com/localrivet/chainrpc/payload"

func NetListening() payload.Payload {
	return payload.Build("net_listening", nil, payload.Bool)
}

func NetPeerCount() payload.Payload {
	return payload.Build("net_peerCount", nil, payload.BigInt)
}

func NetVersion() payload.Payload {
	return payload.Build("net_version", nil, payload.String)
}

func Web3ClientVersion() payload.Payload {
	return payload.Build("web3_clientVersion", nil, payload.String)
}

// Web3Sha3 returns the Keccak-256 of hex encoded data.
func Web3Sha3(data string) payload.Payload {
	return payload.Build("web3_sha3", []any{data}, payload.String)
}
