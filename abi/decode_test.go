// Copyright 2017 The go-ethabi Authors
// This file is part of the go-ethabi library.
//
// The go-ethabi library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethabi library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethabi library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethabi/go-ethabi/common"
)

func mustNewType(t *testing.T, s string) Type {
	t.Helper()
	typ, err := NewType(s)
	if err != nil {
		t.Fatalf("NewType(%q): %v", s, err)
	}
	return typ
}

func mustTypes(t *testing.T, strs ...string) []Type {
	t.Helper()
	types := make([]Type, len(strs))
	for i, s := range strs {
		types[i] = mustNewType(t, s)
	}
	return types
}

var decodeTests = []struct {
	name  string
	types []string
	data  string
	want  []Token
}{
	{
		name:  "address",
		types: []string{"address"},
		data:  "0000000000000000000000001111111111111111111111111111111111111111",
		want:  []Token{addressToken("0x1111111111111111111111111111111111111111")},
	},
	{
		name:  "two addresses",
		types: []string{"address", "address"},
		data: `
			0000000000000000000000001111111111111111111111111111111111111111
			0000000000000000000000002222222222222222222222222222222222222222`,
		want: []Token{
			addressToken("0x1111111111111111111111111111111111111111"),
			addressToken("0x2222222222222222222222222222222222222222"),
		},
	},
	{
		name:  "uint and int",
		types: []string{"uint256", "int256"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000005
			fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffb`,
		want: []Token{
			uintToken(5),
			WordToken(common.HexToHash("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffb")),
		},
	},
	{
		name:  "dynamic array of addresses",
		types: []string{"address[]"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000000000000002
			0000000000000000000000001111111111111111111111111111111111111111
			0000000000000000000000002222222222222222222222222222222222222222`,
		want: []Token{DynSeqToken(
			addressToken("0x1111111111111111111111111111111111111111"),
			addressToken("0x2222222222222222222222222222222222222222"),
		)},
	},
	{
		name:  "fixed array of addresses",
		types: []string{"address[2]"},
		data: `
			0000000000000000000000001111111111111111111111111111111111111111
			0000000000000000000000002222222222222222222222222222222222222222`,
		want: []Token{FixedSeqToken(
			addressToken("0x1111111111111111111111111111111111111111"),
			addressToken("0x2222222222222222222222222222222222222222"),
		)},
	},
	{
		name:  "fixed array of dynamic arrays of addresses",
		types: []string{"address[][2]"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000000000000040
			00000000000000000000000000000000000000000000000000000000000000a0
			0000000000000000000000000000000000000000000000000000000000000002
			0000000000000000000000001111111111111111111111111111111111111111
			0000000000000000000000002222222222222222222222222222222222222222
			0000000000000000000000000000000000000000000000000000000000000002
			0000000000000000000000003333333333333333333333333333333333333333
			0000000000000000000000004444444444444444444444444444444444444444`,
		want: []Token{FixedSeqToken(
			DynSeqToken(
				addressToken("0x1111111111111111111111111111111111111111"),
				addressToken("0x2222222222222222222222222222222222222222"),
			),
			DynSeqToken(
				addressToken("0x3333333333333333333333333333333333333333"),
				addressToken("0x4444444444444444444444444444444444444444"),
			),
		)},
	},
	{
		name:  "dynamic array of dynamic arrays",
		types: []string{"address[][]"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000000000000002
			0000000000000000000000000000000000000000000000000000000000000040
			0000000000000000000000000000000000000000000000000000000000000080
			0000000000000000000000000000000000000000000000000000000000000001
			0000000000000000000000001111111111111111111111111111111111111111
			0000000000000000000000000000000000000000000000000000000000000001
			0000000000000000000000002222222222222222222222222222222222222222`,
		want: []Token{DynSeqToken(
			DynSeqToken(addressToken("0x1111111111111111111111111111111111111111")),
			DynSeqToken(addressToken("0x2222222222222222222222222222222222222222")),
		)},
	},
	{
		name:  "string",
		types: []string{"string"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000000000000009
			6761766f66796f726b0000000000000000000000000000000000000000000000`,
		want: []Token{PackedSeqToken([]byte("gavofyork"))},
	},
	{
		name:  "static tuple",
		types: []string{"(uint256,uint256)"},
		data: `
			000000000000000000000000000000000000000000000000000000000000005d
			0000000000000000000000000000000000000000000000000000000000000045`,
		want: []Token{FixedSeqToken(uintToken(93), uintToken(69))},
	},
	{
		name:  "dynamic tuple of strings",
		types: []string{"(string,string)"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000000000000040
			0000000000000000000000000000000000000000000000000000000000000080
			0000000000000000000000000000000000000000000000000000000000000009
			6761766f66796f726b0000000000000000000000000000000000000000000000
			0000000000000000000000000000000000000000000000000000000000000009
			6761766f66796f726b0000000000000000000000000000000000000000000000`,
		want: []Token{FixedSeqToken(
			PackedSeqToken([]byte("gavofyork")),
			PackedSeqToken([]byte("gavofyork")),
		)},
	},
	{
		name:  "broken utf8 stays raw bytes",
		types: []string{"string"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000000000000004
			e4b88de500000000000000000000000000000000000000000000000000000000`,
		want: []Token{PackedSeqToken([]byte{0xe4, 0xb8, 0x8d, 0xe5})},
	},
	{
		name:  "zero length fixed array from empty input",
		types: []string{"address[0]"},
		data:  "",
		want:  []Token{FixedSeqToken()},
	},
	{
		name:  "nested zero length arrays from empty input",
		types: []string{"address[0][2]"},
		data:  "",
		want:  []Token{FixedSeqToken(FixedSeqToken(), FixedSeqToken())},
	},
}

func TestDecode(t *testing.T) {
	for _, tt := range decodeTests {
		t.Run(tt.name, func(t *testing.T) {
			types := mustTypes(t, tt.types...)
			data := mustHex(t, tt.data)
			tokens, err := Decode(types, data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("token count mismatch: have %d, want %d", len(tokens), len(tt.want))
			}
			for i := range tokens {
				if !tokens[i].Equal(tt.want[i]) {
					t.Errorf("token %d mismatch\nhave %v\nwant %v", i, tokens[i], tt.want[i])
				}
			}
		})
	}
}

// TestDecodeRoundTrip re-encodes every decoded fixture and expects Encode and
// DecodeValidate to agree on the canonical form.
func TestDecodeRoundTrip(t *testing.T) {
	for _, tt := range decodeTests {
		if tt.data == "" {
			continue // the empty fixed array has no byte representation
		}
		t.Run(tt.name, func(t *testing.T) {
			types := mustTypes(t, tt.types...)
			encoded := Encode(tt.want)
			tokens, err := DecodeValidate(types, encoded)
			if err != nil {
				t.Fatalf("DecodeValidate of canonical encoding: %v", err)
			}
			if !bytes.Equal(Encode(tokens), encoded) {
				t.Errorf("round trip not stable\nhave %x\nwant %x", Encode(tokens), encoded)
			}
		})
	}
}

var decodeErrorTests = []struct {
	name  string
	types []string
	data  string
}{
	{
		name:  "short buffer",
		types: []string{"uint256"},
		data:  "00000000000000000000000000000000000000000000000000000000000000", // 31 bytes
	},
	{
		name:  "address with non-zero high bytes",
		types: []string{"address"},
		data:  "0100000000000000000000001111111111111111111111111111111111111111",
	},
	{
		name:  "bool out of range",
		types: []string{"bool"},
		data:  "0000000000000000000000000000000000000000000000000000000000000002",
	},
	{
		name:  "bool with dirty high bytes",
		types: []string{"bool"},
		data:  "0100000000000000000000000000000000000000000000000000000000000001",
	},
	{
		name:  "fixed bytes with trailing garbage",
		types: []string{"bytes2"},
		data:  "1234ff0000000000000000000000000000000000000000000000000000000000",
	},
	{
		name:  "offset out of bounds",
		types: []string{"string"},
		data:  "0000000000000000000000000000000000000000000000000000000000010000",
	},
	{
		name:  "offset word exceeds 32 bits",
		types: []string{"uint256[]"},
		data:  "0000000000000000000000010000000000000000000000000000000000000020",
	},
	{
		name:  "corrupted dynamic array length",
		types: []string{"uint256[]"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000020
			00000000000000000000000000000000000000000000000000000000ffffffff`,
	},
	{
		name:  "string payload exceeds buffer",
		types: []string{"string"},
		data: `
			0000000000000000000000000000000000000000000000000000000000000020
			0000000000000000000000000000000000000000000000000000000000000040
			6761766f66796f726b0000000000000000000000000000000000000000000000`,
	},
	{
		name:  "tuple offset beyond buffer",
		types: []string{"(string,string)"},
		data:  "0000000000000000000000000000000000000000000000000000000000000100",
	},
}

func TestDecodeErrors(t *testing.T) {
	for _, tt := range decodeErrorTests {
		t.Run(tt.name, func(t *testing.T) {
			types := mustTypes(t, tt.types...)
			data := mustHex(t, tt.data)
			if _, err := Decode(types, data); !errors.Is(err, ErrInvalidData) {
				t.Errorf("Decode error = %v, want ErrInvalidData", err)
			}
			if _, err := DecodeValidate(types, data); !errors.Is(err, ErrInvalidData) {
				t.Errorf("DecodeValidate error = %v, want ErrInvalidData", err)
			}
		})
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	types := mustTypes(t, "uint256")
	if _, err := Decode(types, nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Decode(nil) error = %v, want ErrEmptyInput", err)
	}
	// The hint about nonexistent contracts must survive in the message.
	_, err := Decode(types, []byte{})
	if err == nil || !bytes.Contains([]byte(err.Error()), []byte("0x")) {
		t.Errorf("empty input error lacks the JSON-RPC hint: %v", err)
	}
}

// TestDecodeLenientVsValidate feeds both modes data that is well formed but
// not canonical and expects only the strict mode to object.
func TestDecodeLenientVsValidate(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		data  string
	}{
		{
			name:  "trailing word after static value",
			types: []string{"address"},
			data: `
				0000000000000000000000001111111111111111111111111111111111111111
				0000000000000000000000000000000000000000000000000000000000000001`,
		},
		{
			name:  "dirty padding after byte payload",
			types: []string{"bytes"},
			data: `
				0000000000000000000000000000000000000000000000000000000000000020
				0000000000000000000000000000000000000000000000000000000000000002
				1234ff0000000000000000000000000000000000000000000000000000000000`,
		},
		{
			name:  "buffer not a multiple of the word size",
			types: []string{"uint256"},
			data: `
				0000000000000000000000000000000000000000000000000000000000000005
				ff`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := mustTypes(t, tt.types...)
			data := mustHex(t, tt.data)
			if _, err := Decode(types, data); err != nil {
				t.Errorf("lenient Decode rejected the data: %v", err)
			}
			if _, err := DecodeValidate(types, data); !errors.Is(err, ErrInvalidData) {
				t.Errorf("DecodeValidate error = %v, want ErrInvalidData", err)
			}
		})
	}
}

// TestDecodeValidateDynamicConsumesAll checks that strict validation accepts
// a canonical encoding ending in a dynamic tail, where the head offset alone
// says nothing about the furthest consumed byte.
func TestDecodeValidateDynamicConsumesAll(t *testing.T) {
	types := mustTypes(t, "uint256", "string")
	data := Encode([]Token{uintToken(5), PackedSeqToken([]byte("gavofyork"))})
	if _, err := DecodeValidate(types, data); err != nil {
		t.Fatalf("DecodeValidate: %v", err)
	}
	// An extra word after the tail must be rejected.
	data = append(data, make([]byte, 32)...)
	if _, err := DecodeValidate(types, data); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("DecodeValidate with trailing word: %v, want ErrInvalidData", err)
	}
}

func TestDecodeAllZeroFixedBytes(t *testing.T) {
	// The all-zero word is a valid encoding for any fixed bytes length.
	types := mustTypes(t, "bytes2")
	data := make([]byte, 32)
	if _, err := DecodeValidate(types, data); err != nil {
		t.Fatalf("DecodeValidate of zero word: %v", err)
	}
}

func TestReadToken(t *testing.T) {
	data := mustHex(t, `
		0000000000000000000000001111111111111111111111111111111111111111
		0000000000000000000000000000000000000000000000000000000000000005`)

	token, offset, err := ReadToken(mustNewType(t, "address"), data, 0, false)
	if err != nil {
		t.Fatalf("ReadToken: %v", err)
	}
	if offset != 32 {
		t.Errorf("offset after static read = %d, want 32", offset)
	}
	if !token.Equal(addressToken("0x1111111111111111111111111111111111111111")) {
		t.Errorf("unexpected token %v", token)
	}

	token, offset, err = ReadToken(mustNewType(t, "uint256"), data, offset, false)
	if err != nil {
		t.Fatalf("ReadToken: %v", err)
	}
	if offset != 64 {
		t.Errorf("offset after second read = %d, want 64", offset)
	}
	if !token.Equal(uintToken(5)) {
		t.Errorf("unexpected token %v", token)
	}
}
