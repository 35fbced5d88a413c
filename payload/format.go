package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ParseQuantity parses a hex quantity ("0x1f"), a decimal string or a JSON
// number literal into a big integer.
func ParseQuantity(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	n := new(big.Int)
	var ok bool
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		if len(s) == 2 {
			return n, nil
		}
		_, ok = n.SetString(s[2:], 16)
	case strings.HasPrefix(s, "-0x"):
		_, ok = n.SetString(s[3:], 16)
		n.Neg(n)
	default:
		_, ok = n.SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("invalid quantity %q", s)
	}
	return n, nil
}

// quantityText extracts the text of a quantity encoded as a JSON string or
// number.
func quantityText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("quantity is null")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(raw), nil
}

// BigInt formats a quantity as *big.Int.
func BigInt(raw json.RawMessage) (any, error) {
	s, err := quantityText(raw)
	if err != nil {
		return nil, err
	}
	return ParseQuantity(s)
}

// Int formats a quantity as int64.
func Int(raw json.RawMessage) (any, error) {
	n, err := BigInt(raw)
	if err != nil {
		return nil, err
	}
	b := n.(*big.Int)
	if !b.IsInt64() {
		return nil, fmt.Errorf("quantity %s overflows int64", b)
	}
	return b.Int64(), nil
}

// Uint64 formats a quantity as uint64.
func Uint64(raw json.RawMessage) (any, error) {
	n, err := BigInt(raw)
	if err != nil {
		return nil, err
	}
	b := n.(*big.Int)
	if !b.IsUint64() {
		return nil, fmt.Errorf("quantity %s overflows uint64", b)
	}
	return b.Uint64(), nil
}

// Bool formats a JSON boolean.
func Bool(raw json.RawMessage) (any, error) {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("result is not a boolean: %w", err)
	}
	return v, nil
}

// String formats a JSON string.
func String(raw json.RawMessage) (any, error) {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("result is not a string: %w", err)
	}
	return v, nil
}

// Into decodes the result with encoding/json into a T.
func Into[T any]() FormatFunc {
	return func(raw json.RawMessage) (any, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode result into %T: %w", v, err)
		}
		return v, nil
	}
}

// Struct decodes the result into a T using its json tags, converting hex
// quantities into *big.Int, big.Int and integer fields on the way.
func Struct[T any]() FormatFunc {
	return func(raw json.RawMessage) (any, error) {
		var v T
		if err := DecodeStruct(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// DecodeStruct decodes a raw JSON value into out, see Struct.
func DecodeStruct(raw json.RawMessage, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return fmt.Errorf("failed to parse result: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: quantityHook,
		TagName:    "json",
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(generic); err != nil {
		return fmt.Errorf("failed to decode result into %T: %w", out, err)
	}
	return nil
}

var bigIntType = reflect.TypeOf(big.Int{})

// quantityHook converts hex quantity strings and json numbers into the
// numeric target types mapstructure would otherwise reject.
func quantityHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	var text string
	switch v := data.(type) {
	case string:
		text = v
	case json.Number:
		text = v.String()
	default:
		return data, nil
	}

	switch {
	case to == bigIntType:
		return ParseQuantity(text)
	case isHex(text) && isInteger(to.Kind()):
		n, err := ParseQuantity(text)
		if err != nil {
			return nil, err
		}
		if isUnsigned(to.Kind()) {
			if !n.IsUint64() {
				return nil, fmt.Errorf("quantity %s overflows %s", text, to)
			}
			return n.Uint64(), nil
		}
		if !n.IsInt64() {
			return nil, fmt.Errorf("quantity %s overflows %s", text, to)
		}
		return n.Int64(), nil
	}
	return data, nil
}

func isHex(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

func isInteger(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Int64) || isUnsigned(k)
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

// Field extracts one member of an object result and applies next to it. It
// unwraps Solana style {"context": {...}, "value": ...} responses.
func Field(name string, next FormatFunc) FormatFunc {
	return func(raw json.RawMessage) (any, error) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("result is not an object: %w", err)
		}
		member, ok := obj[name]
		if !ok {
			return nil, fmt.Errorf("result has no %q member", name)
		}
		if next == nil {
			return member, nil
		}
		return next(member)
	}
}

// Value is Field("value", next).
func Value(next FormatFunc) FormatFunc {
	return Field("value", next)
}

// Nullable returns nil for a null result and applies next otherwise.
func Nullable(next FormatFunc) FormatFunc {
	return func(raw json.RawMessage) (any, error) {
		if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, nil
		}
		return next(raw)
	}
}

func isUnset(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
