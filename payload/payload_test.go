package payload

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndReformat(t *testing.T) {
	p := Build("eth_chainId", nil, nil)
	assert.Equal(t, "eth_chainId", p.Method)
	assert.NotNil(t, p.Params)
	assert.Empty(t, p.Params)
	assert.Nil(t, p.Format)

	r := Reformat(p, Int)
	assert.NotNil(t, r.Format)
	assert.Nil(t, p.Format, "Reformat must not modify the original")

	n := New("eth_getBalance", "0xabc", "latest")
	assert.Equal(t, []any{"0xabc", "latest"}, n.Params)
}

func TestApplyPassthrough(t *testing.T) {
	raw := json.RawMessage(`{"number":"0x1","weird":[1,"two"]}`)
	v, err := New("eth_getBlockByNumber").Apply(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, v)

	v, err = Build("eth_chainId", nil, Int).Apply(json.RawMessage(`"0x1"`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestOptional(t *testing.T) {
	var nilMap map[string]any
	assert.Equal(t, []any{"a"}, Optional([]any{"a"}, nil, "b"))
	assert.Equal(t, []any{"a", "b"}, Optional([]any{"a"}, "b", nilMap))
	assert.Equal(t, []any{"a", map[string]any{"x": 1}}, Optional([]any{"a"}, map[string]any{"x": 1}))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0x10", "16", true},
		{"0X1f", "31", true},
		{"0x", "0", true},
		{"42", "42", true},
		{"-0x2", "-2", true},
		{"0xzz", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := ParseQuantity(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestScalarFormatters(t *testing.T) {
	v, err := BigInt(json.RawMessage(`"0x10"`))
	require.NoError(t, err)
	assert.Equal(t, 0, v.(*big.Int).Cmp(big.NewInt(16)))

	v, err = BigInt(json.RawMessage(`12345678901234567890123`))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890123", v.(*big.Int).String())

	v, err = Int(json.RawMessage(`"0x1"`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, err = Int(json.RawMessage(`"0xffffffffffffffffff"`))
	assert.Error(t, err)

	v, err = Uint64(json.RawMessage(`"0xffffffffffffffff"`))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<64-1), v)

	_, err = Uint64(json.RawMessage(`null`))
	assert.Error(t, err)

	v, err = Bool(json.RawMessage(`true`))
	require.NoError(t, err)
	assert.Equal(t, true, v)
	_, err = Bool(json.RawMessage(`"true"`))
	assert.Error(t, err)

	v, err = String(json.RawMessage(`"Geth/v1.14"`))
	require.NoError(t, err)
	assert.Equal(t, "Geth/v1.14", v)
}

type account struct {
	Balance     *big.Int `json:"balance"`
	Nonce       uint64   `json:"nonce"`
	CodeHash    string   `json:"codeHash"`
	StorageRoot string   `json:"storageRoot"`
	Slot        int64    `json:"slot"`
	Total       big.Int  `json:"total"`
	Missing     *big.Int `json:"missing"`
}

func TestStruct(t *testing.T) {
	raw := json.RawMessage(`{"balance":"0xde0b6b3a7640000","nonce":"0x5","codeHash":"0xc5d2","storageRoot":"0x56e8","slot":42,"total":"100","missing":null}`)

	v, err := Struct[account]()(raw)
	require.NoError(t, err)
	acct := v.(account)
	assert.Equal(t, "1000000000000000000", acct.Balance.String())
	assert.Equal(t, uint64(5), acct.Nonce)
	assert.Equal(t, "0xc5d2", acct.CodeHash)
	assert.Equal(t, int64(42), acct.Slot)
	assert.Equal(t, "100", acct.Total.String())
	assert.Nil(t, acct.Missing)

	_, err = Struct[account]()(json.RawMessage(`{"nonce":"0xnothex"}`))
	assert.Error(t, err)
}

func TestInto(t *testing.T) {
	v, err := Into[[]string]()(json.RawMessage(`["0xa","0xb"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa", "0xb"}, v)

	_, err = Into[[]string]()(json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestFieldAndValue(t *testing.T) {
	raw := json.RawMessage(`{"context":{"slot":1},"value":5000}`)

	v, err := Value(Uint64)(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), v)

	v, err = Value(nil)(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `5000`, string(v.(json.RawMessage)))

	_, err = Field("nope", nil)(raw)
	assert.Error(t, err)

	_, err = Value(nil)(json.RawMessage(`[]`))
	assert.Error(t, err)
}

func TestNullable(t *testing.T) {
	f := Nullable(Into[map[string]any]())
	v, err := f(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = f(json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, v)
}
