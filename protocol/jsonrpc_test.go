package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSerialization(t *testing.T) {
	req := NewRequest(7, "eth_chainId", nil)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":7,"method":"eth_chainId","params":[]}`, string(data))

	req = NewRequest(8, "eth_getBalance", []any{"0xabc", "latest"})
	data, err = json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":8,"method":"eth_getBalance","params":["0xabc","latest"]}`, string(data))
}

func TestResponseHasError(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1","error":{"code":-32000,"message":"boom"}}`), &resp))
	assert.True(t, resp.HasError())
	assert.Equal(t, "boom", resp.Error.Message)
	assert.True(t, resp.Error.IsServerError())

	resp = Response{}
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":1,"result":null,"error":null}`), &resp))
	assert.False(t, resp.HasError())

	var nilResp *Response
	assert.False(t, nilResp.HasError())
}

func TestIDKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`1`, "1"},
		{` 42 `, "42"},
		{`"0x9cef478923ff08bf67fde6c64013158d"`, "0x9cef478923ff08bf67fde6c64013158d"},
		{`"17"`, "17"},
		{`null`, ""},
		{``, ""},
		{`-3`, "-3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IDKey(json.RawMessage(tt.raw)), "raw %q", tt.raw)
	}
}

func TestNumericID(t *testing.T) {
	n, err := NumericID(json.RawMessage(`12`))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), n)

	_, err = NumericID(nil)
	assert.Error(t, err)

	_, err = NumericID(json.RawMessage(`"abc"`))
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	var p Probe
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"eth_subscription","params":{"subscription":"0x1","result":{}}}`), &p))
	assert.True(t, p.IsNotification())

	p = Probe{}
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":3,"result":"0x1"}`), &p))
	assert.False(t, p.IsNotification())

	assert.True(t, IsBatch([]byte("  [{}]")))
	assert.False(t, IsBatch([]byte(`{"id":1}`)))
}

func TestIsSubscriptionNotification(t *testing.T) {
	assert.True(t, IsSubscriptionNotification("eth_subscription"))
	assert.True(t, IsSubscriptionNotification("slotNotification"))
	assert.True(t, IsSubscriptionNotification("accountNotification"))
	assert.False(t, IsSubscriptionNotification("eth_subscribe"))
	assert.False(t, IsSubscriptionNotification(""))
}
