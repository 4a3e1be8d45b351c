// Copyright 2015 The go-ethabi Authors
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
	"fmt"
	"strings"

	"github.com/ethabi/go-ethabi/common"
	"github.com/ethabi/go-ethabi/crypto"
)

// Selector returns the 4 byte function selector of the given signature
// string. The signature is hashed as given; use MethodID to derive the
// selector from parsed types with canonicalized names.
func Selector(sig string) (id [4]byte) {
	copy(id[:], crypto.Keccak256([]byte(sig))[:4])
	return id
}

// MethodID computes the 4 byte selector from a method name and its argument
// types, using the canonical string representation of each type ("uint256"
// rather than "uint").
func MethodID(name string, types []Type) [4]byte {
	sigs := make([]string, len(types))
	for i, t := range types {
		sigs[i] = t.String()
	}
	return Selector(fmt.Sprintf("%s(%s)", name, strings.Join(sigs, ",")))
}

// ParseSignature parses a human readable method signature such as
// "transfer(address,uint256)" into the method name and its argument types.
// Nested tuples and arrays are supported: "f((address,bytes)[],uint256[2])".
func ParseSignature(sig string) (string, []Type, error) {
	open := strings.Index(sig, "(")
	if open < 0 || !strings.HasSuffix(sig, ")") {
		return "", nil, fmt.Errorf("abi: invalid method signature %q", sig)
	}
	name := sig[:open]
	if name == "" {
		return "", nil, fmt.Errorf("abi: missing method name in signature %q", sig)
	}
	components, err := splitComposite(sig[open+1 : len(sig)-1])
	if err != nil {
		return "", nil, err
	}
	types := make([]Type, len(components))
	for i, c := range components {
		if types[i], err = NewType(c); err != nil {
			return "", nil, err
		}
	}
	return name, types, nil
}

// Pack tokenizes the given native values against the type sequence and
// serializes them. It is the convenience composition of Tokenize and Encode
// used to build call arguments.
func Pack(types []Type, values ...interface{}) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("abi: argument count mismatch: %d for %d", len(values), len(types))
	}
	tokens := make([]Token, len(types))
	for i, t := range types {
		token, err := t.Tokenize(values[i])
		if err != nil {
			return nil, err
		}
		tokens[i] = token
	}
	return Encode(tokens), nil
}

// Unpack decodes the buffer against the type sequence and converts every
// token into its native value. Decoding is lenient; use DecodeValidate when
// canonical form matters.
func Unpack(types []Type, data []byte) ([]interface{}, error) {
	tokens, err := Decode(types, data)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(tokens))
	for i, t := range types {
		if values[i], err = t.Detokenize(tokens[i]); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// EncodeWithSelector serializes the tokens prefixed with the 4 byte function
// selector, producing a complete call payload.
func EncodeWithSelector(selector [4]byte, tokens []Token) []byte {
	return append(selector[:], Encode(tokens)...)
}

// EncodeHex returns the 0x prefixed hex string of the encoded tokens.
func EncodeHex(tokens []Token) string {
	return "0x" + common.Bytes2Hex(Encode(tokens))
}

// EncodeHexWithSelector returns the 0x prefixed hex string of the encoded
// tokens prefixed with the function selector.
func EncodeHexWithSelector(selector [4]byte, tokens []Token) string {
	return "0x" + common.Bytes2Hex(EncodeWithSelector(selector, tokens))
}
