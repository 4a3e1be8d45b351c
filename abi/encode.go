// Copyright 2016 The go-ethabi Authors
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
	"encoding/binary"

	"github.com/ethabi/go-ethabi/common"
)

// Encode serializes the given token sequence into the canonical ABI byte
// layout:
//
//	enc(X) = head(X(1)) ... head(X(k)) tail(X(1)) ... tail(X(k))
//
// where for a static X(i) head(X(i)) = enc(X(i)) and tail(X(i)) is empty, and
// for a dynamic X(i) the head holds the byte offset of tail(X(i)) measured
// from the start of the enclosing dynamic region. Nested dynamic composites
// apply the same split recursively within their own payload.
//
// Encode is deterministic and total over well formed token trees. It panics
// on trees violating internal invariants; that is a programming error of the
// caller, not a recoverable condition.
func Encode(tokens []Token) []byte {
	mediates := make([]mediate, len(tokens))
	for i, token := range tokens {
		mediates[i] = mediateToken(token)
	}
	return encodeHeadTail(nil, mediates)
}

// mediateKind classifies how a token contributes to the head and tail of its
// enclosing sequence.
type mediateKind byte

const (
	// mediateRaw contributes exactly one word directly into the head.
	mediateRaw mediateKind = iota
	// mediateRawSeq is a static composite whose words are emitted in place.
	mediateRawSeq
	// mediatePrefixed contributes an offset word to the head and a length
	// prefixed, zero padded byte payload to the tail.
	mediatePrefixed
	// mediatePrefixedSeq is a dynamic tuple or fixed array: an offset word in
	// the head, the recursively encoded elements in the tail.
	mediatePrefixedSeq
	// mediatePrefixedSeqWithLength is a dynamic array: like mediatePrefixedSeq
	// but the tail begins with the element count.
	mediatePrefixedSeqWithLength
)

// mediate is the intermediate classification of one token. Head and tail
// lengths are derived bottom-up from it before any byte is written.
type mediate struct {
	kind     mediateKind
	word     Word
	packed   []byte
	children []mediate
}

func mediateToken(token Token) mediate {
	switch token.Kind() {
	case WordKind:
		return mediate{kind: mediateRaw, word: token.word}
	case PackedSeqKind:
		return mediate{kind: mediatePrefixed, packed: token.packed}
	case FixedSeqKind:
		kind := mediateRawSeq
		if token.IsDynamic() {
			kind = mediatePrefixedSeq
		}
		return mediate{kind: kind, children: mediateTokens(token.elems)}
	case DynSeqKind:
		return mediate{kind: mediatePrefixedSeqWithLength, children: mediateTokens(token.elems)}
	default:
		panic("abi: fatal error: unknown token kind")
	}
}

func mediateTokens(tokens []Token) []mediate {
	mediates := make([]mediate, len(tokens))
	for i, token := range tokens {
		mediates[i] = mediateToken(token)
	}
	return mediates
}

// headLen returns the number of bytes the mediate occupies in the head of
// its enclosing sequence.
func (m *mediate) headLen() int {
	switch m.kind {
	case mediateRaw:
		return 32
	case mediateRawSeq:
		total := 0
		for i := range m.children {
			total += m.children[i].headLen()
		}
		return total
	default:
		return 32
	}
}

// tailLen returns the number of bytes the mediate appends to the tail of its
// enclosing sequence.
func (m *mediate) tailLen() int {
	switch m.kind {
	case mediateRaw, mediateRawSeq:
		return 0
	case mediatePrefixed:
		return 32 + (len(m.packed)+31)/32*32
	case mediatePrefixedSeq:
		total := 0
		for i := range m.children {
			total += m.children[i].headLen() + m.children[i].tailLen()
		}
		return total
	case mediatePrefixedSeqWithLength:
		total := 32
		for i := range m.children {
			total += m.children[i].headLen() + m.children[i].tailLen()
		}
		return total
	default:
		panic("abi: fatal error: unknown mediate kind")
	}
}

// headAppend emits the head contribution of the mediate. For prefixed
// mediates that is the offset of their tail relative to the start of the
// enclosing dynamic region.
func (m *mediate) headAppend(buf []byte, suffixOffset int) []byte {
	switch m.kind {
	case mediateRaw:
		return append(buf, m.word[:]...)
	case mediateRawSeq:
		for i := range m.children {
			buf = m.children[i].headAppend(buf, 0)
		}
		return buf
	default:
		return appendUint(buf, suffixOffset)
	}
}

// tailAppend emits the tail payload of the mediate, recursively applying the
// head/tail split inside nested dynamic structures.
func (m *mediate) tailAppend(buf []byte) []byte {
	switch m.kind {
	case mediateRaw, mediateRawSeq:
		return buf
	case mediatePrefixed:
		return packBytesSlice(buf, m.packed)
	case mediatePrefixedSeq:
		return encodeHeadTail(buf, m.children)
	case mediatePrefixedSeqWithLength:
		buf = appendUint(buf, len(m.children))
		return encodeHeadTail(buf, m.children)
	default:
		panic("abi: fatal error: unknown mediate kind")
	}
}

// encodeHeadTail appends the full encoding of the mediate sequence: first
// every head, each offset word pointing past the cumulative head length plus
// the tails of all earlier siblings, then every tail in sibling order.
func encodeHeadTail(buf []byte, mediates []mediate) []byte {
	headsLen := 0
	for i := range mediates {
		headsLen += mediates[i].headLen()
	}
	offset := headsLen
	for i := range mediates {
		buf = mediates[i].headAppend(buf, offset)
		offset += mediates[i].tailLen()
	}
	for i := range mediates {
		buf = mediates[i].tailAppend(buf)
	}
	return buf
}

// packBytesSlice packs the given bytes as [L, V] as the canonical
// representation of a length prefixed byte slice.
func packBytesSlice(buf []byte, bytes []byte) []byte {
	buf = appendUint(buf, len(bytes))
	return append(buf, common.RightPadBytes(bytes, (len(bytes)+31)/32*32)...)
}

// appendUint appends n as a single left padded big-endian word.
func appendUint(buf []byte, n int) []byte {
	var word Word
	binary.BigEndian.PutUint64(word[24:], uint64(n))
	return append(buf, word[:]...)
}
