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
	"bytes"
	"fmt"
	"strings"

	"github.com/ethabi/go-ethabi/common"
)

// Word is the 32 byte atomic unit of the ABI encoding.
type Word = common.Hash

// TokenKind identifies the shape of a Token.
type TokenKind byte

// Token shape enumerator. A token carries no logical type information beyond
// its shape; matching a token against a Type is a separate step (TypeCheck).
const (
	// WordKind is any value fitting in a single 32 byte word: addresses,
	// sized integers, booleans and fixed size byte arrays.
	WordKind TokenKind = iota
	// FixedSeqKind is a tuple or a fixed length array. The element count is
	// part of the meaning of the value and is never serialized.
	FixedSeqKind
	// DynSeqKind is a runtime length array, serialized with a length prefix.
	DynSeqKind
	// PackedSeqKind is a bytes or string payload of arbitrary length. Its
	// elements are raw octets, not sub-tokens.
	PackedSeqKind
)

// Token is the tagged in-memory representation of a decoded or pre-encoded
// ABI value tree. Composite tokens own their children outright; the tree is
// acyclic by construction.
type Token struct {
	kind   TokenKind
	word   Word
	elems  []Token
	packed []byte
}

// WordToken returns a token holding a single 32 byte word.
func WordToken(w Word) Token {
	return Token{kind: WordKind, word: w}
}

// FixedSeqToken returns a token representing a tuple or fixed length array.
func FixedSeqToken(elems ...Token) Token {
	return Token{kind: FixedSeqKind, elems: elems}
}

// DynSeqToken returns a token representing a runtime length array.
func DynSeqToken(elems ...Token) Token {
	return Token{kind: DynSeqKind, elems: elems}
}

// PackedSeqToken returns a token holding a raw bytes or string payload.
func PackedSeqToken(data []byte) Token {
	return Token{kind: PackedSeqKind, packed: data}
}

// Kind returns the shape of the token.
func (t Token) Kind() TokenKind { return t.kind }

// Word returns the underlying word of a value token.
func (t Token) Word() (Word, bool) {
	if t.kind != WordKind {
		return Word{}, false
	}
	return t.word, true
}

// FixedSeq returns the elements of a tuple or fixed length array token.
func (t Token) FixedSeq() ([]Token, bool) {
	if t.kind != FixedSeqKind {
		return nil, false
	}
	return t.elems, true
}

// DynSeq returns the elements of a runtime length array token.
func (t Token) DynSeq() ([]Token, bool) {
	if t.kind != DynSeqKind {
		return nil, false
	}
	return t.elems, true
}

// PackedData returns the raw payload of a bytes or string token.
func (t Token) PackedData() ([]byte, bool) {
	if t.kind != PackedSeqKind {
		return nil, false
	}
	return t.packed, true
}

// IsDynamic reports whether the token requires prefixed (offset and tail)
// encoding. A fixed sequence is dynamic iff any of its elements is.
func (t Token) IsDynamic() bool {
	switch t.kind {
	case DynSeqKind, PackedSeqKind:
		return true
	case FixedSeqKind:
		for _, elem := range t.elems {
			if elem.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Equal reports whether two tokens have the same shape and contents. String
// payloads compare as their raw bytes.
func (t Token) Equal(other Token) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case WordKind:
		return t.word == other.word
	case PackedSeqKind:
		return bytes.Equal(t.packed, other.packed)
	default:
		if len(t.elems) != len(other.elems) {
			return false
		}
		for i := range t.elems {
			if !t.elems[i].Equal(other.elems[i]) {
				return false
			}
		}
		return true
	}
}

// String implements fmt.Stringer.
func (t Token) String() string {
	switch t.kind {
	case WordKind:
		return fmt.Sprintf("Word(%x)", t.word)
	case PackedSeqKind:
		return fmt.Sprintf("PackedSeq(%x)", t.packed)
	case FixedSeqKind, DynSeqKind:
		parts := make([]string, len(t.elems))
		for i, elem := range t.elems {
			parts[i] = elem.String()
		}
		name := "FixedSeq"
		if t.kind == DynSeqKind {
			name = "DynSeq"
		}
		return fmt.Sprintf("%s[%s]", name, strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("Token(%d)", t.kind)
	}
}
