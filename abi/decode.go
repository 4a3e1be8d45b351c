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
	"encoding/binary"

	"github.com/ethabi/go-ethabi/common"
)

// Decode parses an ABI encoded buffer into a token per requested type. It
// performs the checks necessary for memory safety and type shape correctness
// but tolerates non-canonical padding and trailing bytes.
func Decode(types []Type, data []byte) ([]Token, error) {
	return decodeTokens(types, data, false)
}

// DecodeValidate parses an ABI encoded buffer like Decode but additionally
// requires the buffer to be the canonical encoding: every padding region must
// be zero filled and the consumed length must equal the buffer length exactly.
func DecodeValidate(types []Type, data []byte) ([]Token, error) {
	return decodeTokens(types, data, true)
}

// decodeResult carries one decoded token together with the offset just past
// its head contribution and the furthest byte of the buffer its decoding
// touched, tail included.
type decodeResult struct {
	token     Token
	newOffset int
	end       int
}

func decodeTokens(types []Type, data []byte, validate bool) ([]Token, error) {
	if len(data) == 0 {
		for _, t := range types {
			if !t.isEmptyBytesValidEncoding() {
				return nil, ErrEmptyInput
			}
		}
	}
	var (
		tokens = make([]Token, 0, len(types))
		offset int
		maxEnd int
	)
	for _, t := range types {
		res, err := readToken(t, data, offset, validate)
		if err != nil {
			return nil, err
		}
		offset = res.newOffset
		if res.end > maxEnd {
			maxEnd = res.end
		}
		tokens = append(tokens, res.token)
	}
	if offset > maxEnd {
		maxEnd = offset
	}
	if validate && maxEnd != len(data) {
		return nil, invalidDataErr("buffer not fully consumed: %d of %d bytes", maxEnd, len(data))
	}
	return tokens, nil
}

// ReadToken decodes a single value of type t out of data at the given byte
// offset. The returned offset is positioned just past the value's head
// contribution: one word past the offset word for dynamic values, past the
// last element for static ones. It is the composable primitive Decode is
// built from.
func ReadToken(t Type, data []byte, offset int, validate bool) (Token, int, error) {
	res, err := readToken(t, data, offset, validate)
	if err != nil {
		return Token{}, 0, err
	}
	return res.token, res.newOffset, nil
}

func readToken(t Type, data []byte, offset int, validate bool) (decodeResult, error) {
	switch t.T {
	case AddressTy:
		word, err := peekWord(data, offset)
		if err != nil {
			return decodeResult{}, err
		}
		if err := checkZeroes(word[:12]); err != nil {
			return decodeResult{}, invalidDataErr("address with non-zero high bytes: %x", word)
		}
		return decodeResult{token: WordToken(word), newOffset: offset + 32, end: offset + 32}, nil

	case IntTy, UintTy:
		word, err := peekWord(data, offset)
		if err != nil {
			return decodeResult{}, err
		}
		return decodeResult{token: WordToken(word), newOffset: offset + 32, end: offset + 32}, nil

	case BoolTy:
		word, err := peekWord(data, offset)
		if err != nil {
			return decodeResult{}, err
		}
		if err := checkBool(word); err != nil {
			return decodeResult{}, err
		}
		return decodeResult{token: WordToken(word), newOffset: offset + 32, end: offset + 32}, nil

	case FixedBytesTy, FunctionTy:
		// FixedBytes is anything from bytes1 to bytes32. These values are
		// padded with trailing zeros to fill 32 bytes. A function value is
		// validated like bytes24 (20 byte address plus 4 byte selector).
		word, err := peekWord(data, offset)
		if err != nil {
			return decodeResult{}, err
		}
		if err := checkFixedBytes(word, t.Size); err != nil {
			return decodeResult{}, err
		}
		return decodeResult{token: WordToken(word), newOffset: offset + 32, end: offset + 32}, nil

	case BytesTy, StringTy:
		// Note that no UTF-8 validity check happens here for strings. An
		// otherwise well formed message with a malformed string payload
		// still decodes; rejecting bad UTF-8 is Detokenize's business.
		dynOffset, err := peekUint(data, offset)
		if err != nil {
			return decodeResult{}, err
		}
		length, err := peekUint(data, dynOffset)
		if err != nil {
			return decodeResult{}, err
		}
		payload, err := takeBytes(data, dynOffset+32, length, validate)
		if err != nil {
			return decodeResult{}, err
		}
		end := dynOffset + 32 + (length+31)/32*32
		return decodeResult{token: PackedSeqToken(payload), newOffset: offset + 32, end: end}, nil

	case SliceTy:
		lenOffset, err := peekUint(data, offset)
		if err != nil {
			return decodeResult{}, err
		}
		length, err := peekUint(data, lenOffset)
		if err != nil {
			return decodeResult{}, err
		}
		// peekUint has proven lenOffset+32 to be in bounds.
		tail := data[lenOffset+32:]

		var (
			elems     []Token
			newOffset int
			childEnd  int
		)
		for i := 0; i < length; i++ {
			res, err := readToken(*t.Elem, tail, newOffset, validate)
			if err != nil {
				return decodeResult{}, err
			}
			newOffset = res.newOffset
			if res.end > childEnd {
				childEnd = res.end
			}
			elems = append(elems, res.token)
		}
		if newOffset > childEnd {
			childEnd = newOffset
		}
		end := lenOffset + 32 + childEnd
		return decodeResult{token: DynSeqToken(elems...), newOffset: offset + 32, end: end}, nil

	case ArrayTy:
		elems, newOffset, end, err := readSeq(tupleOrArrayElems(t), data, offset, validate, t.IsDynamic())
		if err != nil {
			return decodeResult{}, err
		}
		return decodeResult{token: FixedSeqToken(elems...), newOffset: newOffset, end: end}, nil

	case TupleTy:
		elems, newOffset, end, err := readSeq(tupleOrArrayElems(t), data, offset, validate, t.IsDynamic())
		if err != nil {
			return decodeResult{}, err
		}
		return decodeResult{token: FixedSeqToken(elems...), newOffset: newOffset, end: end}, nil

	default:
		return decodeResult{}, invalidDataErr("unknown type %v", t.T)
	}
}

// tupleOrArrayElems flattens a fixed array or tuple descriptor into its
// ordered element descriptors.
func tupleOrArrayElems(t Type) []*Type {
	if t.T == TupleTy {
		return t.TupleElems
	}
	elems := make([]*Type, t.Size)
	for i := range elems {
		elems[i] = t.Elem
	}
	return elems
}

// readSeq decodes the elements of a fixed array or tuple. A dynamic
// composite is reached through a single offset word and decoded zero based
// inside its own payload region; a static one is decoded in place, advancing
// the shared running offset.
func readSeq(elems []*Type, data []byte, offset int, validate bool, dynamic bool) ([]Token, int, int, error) {
	var (
		tail     []byte
		base     int
		position int
	)
	if dynamic {
		subOffset, err := peekUint(data, offset)
		if err != nil {
			return nil, 0, 0, err
		}
		if subOffset > len(data) {
			return nil, 0, 0, invalidDataErr("offset %d would go over slice boundary (len=%d)", subOffset, len(data))
		}
		tail, base = data[subOffset:], subOffset
	} else {
		tail, position = data, offset
	}

	var (
		tokens   = make([]Token, 0, len(elems))
		childEnd int
	)
	for _, elem := range elems {
		res, err := readToken(*elem, tail, position, validate)
		if err != nil {
			return nil, 0, 0, err
		}
		position = res.newOffset
		if res.end > childEnd {
			childEnd = res.end
		}
		tokens = append(tokens, res.token)
	}
	if position > childEnd {
		childEnd = position
	}
	if dynamic {
		// The returned offset follows the single offset word, never the
		// payload's internal offset.
		return tokens, offset + 32, base + childEnd, nil
	}
	return tokens, position, childEnd, nil
}

// peekWord reads the 32 byte word starting at offset.
func peekWord(data []byte, offset int) (Word, error) {
	if offset+32 > len(data) {
		return Word{}, invalidDataErr("length insufficient %d require %d", len(data), offset+32)
	}
	return common.BytesToHash(data[offset : offset+32]), nil
}

// peekUint reads the word at offset and interprets it as an offset or length.
// The high 28 bytes must be exactly zero, so the result is always below 2^32
// and later additions of a handful of such values cannot overflow an int.
// That bound is established here, before any pointer arithmetic happens.
func peekUint(data []byte, offset int) (int, error) {
	word, err := peekWord(data, offset)
	if err != nil {
		return 0, err
	}
	if err := checkZeroes(word[:28]); err != nil {
		return 0, invalidDataErr("offset or length word exceeds 32 bits: %x", word)
	}
	return int(binary.BigEndian.Uint32(word[28:])), nil
}

// takeBytes copies length raw bytes starting at offset. In validating mode
// the padding up to the next word boundary must be present and zero filled.
func takeBytes(data []byte, offset, length int, validate bool) ([]byte, error) {
	if validate {
		padded := (length + 31) / 32 * 32
		if offset+padded > len(data) {
			return nil, invalidDataErr("padded payload of %d bytes at offset %d exceeds buffer (len=%d)", padded, offset, len(data))
		}
		if err := checkZeroes(data[offset+length : offset+padded]); err != nil {
			return nil, invalidDataErr("byte string tail padding is not zero")
		}
	} else if offset+length > len(data) {
		return nil, invalidDataErr("payload of %d bytes at offset %d exceeds buffer (len=%d)", length, offset, len(data))
	}
	return common.CopyBytes(data[offset : offset+length]), nil
}

// checkBool verifies the word is a canonical boolean: 31 zero bytes followed
// by 0x00 or 0x01.
func checkBool(word Word) error {
	if err := checkZeroes(word[:31]); err != nil {
		return errBadBool
	}
	if word[31] > 1 {
		return errBadBool
	}
	return nil
}

// checkFixedBytes verifies the trailing bytes of a fixed size byte array are
// zero. The all-zero word is tolerated as a degenerate valid encoding for
// any length.
func checkFixedBytes(word Word, size int) error {
	if word.IsZero() {
		return nil
	}
	switch {
	case size <= 0 || size > 32:
		return invalidDataErr("invalid fixed bytes size %d", size)
	case size == 32:
		return nil
	default:
		if err := checkZeroes(word[size:]); err != nil {
			return invalidDataErr("fixed bytes with non-zero trailing bytes: %x", word)
		}
		return nil
	}
}

func checkZeroes(data []byte) error {
	for _, b := range data {
		if b != 0 {
			return ErrInvalidData
		}
	}
	return nil
}
