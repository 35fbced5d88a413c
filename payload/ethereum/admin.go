package ethereum

import "github.com/localrivet/chainrpc/payload"

func AdminAddPeer(enode string) payload.Payload {
	return payload.Build("admin_addPeer", []any{enode}, payload.Bool)
}

func AdminDatadir() payload.Payload {
	return payload.Build("admin_datadir", nil, payload.String)
}

func AdminNodeInfo() payload.Payload {
	return payload.Build("admin_nodeInfo", nil, nil)
}

func AdminPeers() payload.Payload {
	return payload.Build("admin_peers", nil, nil)
}

func AdminRemovePeer(enode string) payload.Payload {
	return payload.Build("admin_removePeer", []any{enode}, payload.Bool)
}

// ServerOptions are the optional arguments of admin_startHTTP and
// admin_startWS. Zero values are sent as null so the node applies its
// defaults.
type ServerOptions struct {
	Host string
	Port int
	Cors string
	APIs string
}

func (o ServerOptions) params() []any {
	orNil := func(s string) any {
		if s == "" {
			return nil
		}
		return s
	}
	var port any
	if o.Port != 0 {
		port = o.Port
	}
	return []any{orNil(o.Host), port, orNil(o.Cors), orNil(o.APIs)}
}

func AdminStartRPC(o ServerOptions) payload.Payload {
	return payload.Build("admin_startRPC", o.params(), payload.Bool)
}

func AdminStartWS(o ServerOptions) payload.Payload {
	return payload.Build("admin_startWS", o.params(), payload.Bool)
}

func AdminStopRPC() payload.Payload {
	return payload.Build("admin_stopRPC", nil, payload.Bool)
}

func AdminStopWS() payload.Payload {
	return payload.Build("admin_stopWS", nil, payload.Bool)
}
