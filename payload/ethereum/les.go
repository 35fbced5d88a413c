package ethereum

import "github.com/localrivet/chainrpc/payload"

func LesClientInfo(ids []string) payload.Payload {
	return payload.Build("les_clientInfo", []any{ids}, nil)
}

func LesGetCheckpoint(sectionIndex uint64) payload.Payload {
	return payload.Build("les_getCheckpoint", []any{sectionIndex}, nil)
}

func LesGetCheckpointContractAddress() payload.Payload {
	return payload.Build("les_getCheckpointContractAddress", nil, payload.String)
}

func LesLatestCheckpoint() payload.Payload {
	return payload.Build("les_latestCheckpoint", nil, nil)
}

func LesPriorityClientInfo(ids []string) payload.Payload {
	return payload.Build("les_priorityClientInfo", []any{ids}, nil)
}

func LesServerInfo() payload.Payload {
	return payload.Build("les_serverInfo", nil, nil)
}
