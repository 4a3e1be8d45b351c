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
	"encoding/binary"
	"fmt"
	"math/big"
	"reflect"
	"unicode/utf8"

	"github.com/ethabi/go-ethabi/common"
	"github.com/ethabi/go-ethabi/common/math"
	"github.com/holiman/uint256"
)

var (
	// MaxUint256 is the maximum value that can be represented by a uint256.
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 256), common.Big1)
	// MaxInt256 is the maximum value that can be represented by an int256.
	MaxInt256 = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 255), common.Big1)
)

// Tokenizer is the per-field tokenization contract implemented by values able
// to convert themselves into a Token. Generated bindings for user defined
// record types implement it by collecting their fields into a FixedSeq; the
// codec itself only ever calls ToToken.
type Tokenizer interface {
	ToToken() Token
}

// Tokenize converts a native Go value into the token this type would decode
// to. It accepts the reflect-compatible representations produced by
// Detokenize plus a few convenient widenings: any signed or unsigned integer
// kind, *big.Int or *uint256.Int for numeric types, byte arrays or slices
// for byte types, and either a struct or an []interface{} for tuples. Values
// implementing Tokenizer are converted through that interface and then type
// checked.
func (t Type) Tokenize(value interface{}) (Token, error) {
	if tk, ok := value.(Tokenizer); ok {
		token := tk.ToToken()
		if !t.TypeCheck(token) {
			return Token{}, fmt.Errorf("abi: tokenizer value does not match type %v", t)
		}
		return token, nil
	}
	if u, ok := value.(*uint256.Int); ok {
		if t.T != UintTy && t.T != IntTy {
			return Token{}, fmt.Errorf("abi: cannot use uint256.Int as type %v as argument", t)
		}
		return WordToken(Word(u.Bytes32())), nil
	}

	v := indirect(reflect.ValueOf(value))

	switch t.T {
	case IntTy, UintTy:
		word, err := tokenizeNum(v)
		if err != nil {
			return Token{}, err
		}
		return WordToken(word), nil

	case BoolTy:
		if v.Kind() != reflect.Bool {
			return Token{}, typeErr(t, v)
		}
		var word Word
		if v.Bool() {
			word[31] = 1
		}
		return WordToken(word), nil

	case StringTy:
		if v.Kind() != reflect.String {
			return Token{}, typeErr(t, v)
		}
		return PackedSeqToken([]byte(v.String())), nil

	case AddressTy:
		if v.Kind() == reflect.Array {
			v = mustArrayToByteSlice(v)
		}
		if v.Type() != reflect.TypeOf([]byte{}) || v.Len() != common.AddressLength {
			return Token{}, typeErr(t, v)
		}
		return WordToken(common.BytesToHash(common.LeftPadBytes(v.Bytes(), 32))), nil

	case BytesTy:
		if v.Kind() == reflect.Array {
			v = mustArrayToByteSlice(v)
		}
		if v.Type() != reflect.TypeOf([]byte{}) {
			return Token{}, typeErr(t, v)
		}
		return PackedSeqToken(common.CopyBytes(v.Bytes())), nil

	case FixedBytesTy, FunctionTy:
		if v.Kind() == reflect.Array {
			v = mustArrayToByteSlice(v)
		}
		if v.Type() != reflect.TypeOf([]byte{}) || v.Len() != t.Size {
			return Token{}, typeErr(t, v)
		}
		return WordToken(common.BytesToHash(common.RightPadBytes(v.Bytes(), 32))), nil

	case SliceTy:
		if v.Kind() != reflect.Slice {
			return Token{}, typeErr(t, v)
		}
		elems := make([]Token, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := t.Elem.Tokenize(v.Index(i).Interface())
			if err != nil {
				return Token{}, err
			}
			elems[i] = elem
		}
		return DynSeqToken(elems...), nil

	case ArrayTy:
		if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
			return Token{}, typeErr(t, v)
		}
		if v.Len() != t.Size {
			return Token{}, fmt.Errorf("abi: cannot use %v of length %d as type %v", v.Kind(), v.Len(), t)
		}
		elems := make([]Token, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := t.Elem.Tokenize(v.Index(i).Interface())
			if err != nil {
				return Token{}, err
			}
			elems[i] = elem
		}
		return FixedSeqToken(elems...), nil

	case TupleTy:
		return t.tokenizeTuple(v)

	default:
		return Token{}, fmt.Errorf("abi: unknown type %v", t.T)
	}
}

// tokenizeTuple accepts either a struct whose fields appear in declaration
// order, or an []interface{} of matching arity.
func (t Type) tokenizeTuple(v reflect.Value) (Token, error) {
	fields := make([]interface{}, 0, len(t.TupleElems))
	switch v.Kind() {
	case reflect.Struct:
		if v.NumField() != len(t.TupleElems) {
			return Token{}, fmt.Errorf("abi: struct with %d fields cannot be used as tuple %v", v.NumField(), t)
		}
		for i := 0; i < v.NumField(); i++ {
			fields = append(fields, v.Field(i).Interface())
		}
	case reflect.Slice:
		if v.Len() != len(t.TupleElems) {
			return Token{}, fmt.Errorf("abi: slice of %d values cannot be used as tuple %v", v.Len(), t)
		}
		for i := 0; i < v.Len(); i++ {
			fields = append(fields, v.Index(i).Interface())
		}
	default:
		return Token{}, typeErr(t, v)
	}
	elems := make([]Token, len(fields))
	for i, field := range fields {
		elem, err := t.TupleElems[i].Tokenize(field)
		if err != nil {
			return Token{}, err
		}
		elems[i] = elem
	}
	return FixedSeqToken(elems...), nil
}

// tokenizeNum packs the given number into a single word, sign extending
// negative values into the high bytes (standard two's complement into a 32
// byte word).
func tokenizeNum(v reflect.Value) (Word, error) {
	switch kind := v.Kind(); kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return common.BytesToHash(math.U256Bytes(new(big.Int).SetUint64(v.Uint()))), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return common.BytesToHash(math.U256Bytes(big.NewInt(v.Int()))), nil
	case reflect.Ptr:
		bigint, ok := v.Interface().(*big.Int)
		if !ok {
			return Word{}, fmt.Errorf("abi: cannot use %v as number", v.Type())
		}
		return common.BytesToHash(math.U256Bytes(new(big.Int).Set(bigint))), nil
	default:
		return Word{}, fmt.Errorf("abi: cannot use %v as number", kind)
	}
}

// Detokenize converts a type checked token back into the corresponding
// native value: sized Go integers (or *big.Int beyond 64 bits) for numeric
// types, common.Address, bool, string, byte slices and arrays, Go slices and
// arrays for sequences and a generated struct for tuples. It fails with
// ErrInvalidData when the token's shape does not match or the payload
// violates a semantic constraint of the type, such as a boolean word other
// than 0 or 1 or a string holding invalid UTF-8.
func (t Type) Detokenize(token Token) (interface{}, error) {
	switch t.T {
	case IntTy, UintTy:
		word, ok := token.Word()
		if !ok {
			return nil, shapeErr(t, token)
		}
		return ReadInteger(t, word.Bytes()), nil

	case BoolTy:
		word, ok := token.Word()
		if !ok {
			return nil, shapeErr(t, token)
		}
		if err := checkBool(word); err != nil {
			return nil, err
		}
		return word[31] == 1, nil

	case StringTy:
		payload, ok := token.PackedData()
		if !ok {
			return nil, shapeErr(t, token)
		}
		// Rejecting malformed UTF-8 is an explicit native-layer policy; the
		// decoder below it tolerates any byte sequence.
		if !utf8.Valid(payload) {
			return nil, invalidDataErr("string payload is not valid UTF-8: %x", payload)
		}
		return string(payload), nil

	case BytesTy:
		payload, ok := token.PackedData()
		if !ok {
			return nil, shapeErr(t, token)
		}
		return common.CopyBytes(payload), nil

	case AddressTy:
		word, ok := token.Word()
		if !ok {
			return nil, shapeErr(t, token)
		}
		if err := checkZeroes(word[:12]); err != nil {
			return nil, invalidDataErr("address with non-zero high bytes: %x", word)
		}
		return common.BytesToAddress(word.Bytes()), nil

	case FixedBytesTy:
		word, ok := token.Word()
		if !ok {
			return nil, shapeErr(t, token)
		}
		if err := checkFixedBytes(word, t.Size); err != nil {
			return nil, err
		}
		return ReadFixedBytes(t, word.Bytes())

	case FunctionTy:
		word, ok := token.Word()
		if !ok {
			return nil, shapeErr(t, token)
		}
		return readFunctionType(t, word)

	case SliceTy:
		elems, ok := token.DynSeq()
		if !ok {
			return nil, shapeErr(t, token)
		}
		return t.detokenizeSeq(elems, reflect.MakeSlice(t.GetType(), len(elems), len(elems)))

	case ArrayTy:
		elems, ok := token.FixedSeq()
		if !ok || len(elems) != t.Size {
			return nil, shapeErr(t, token)
		}
		return t.detokenizeSeq(elems, reflect.New(t.GetType()).Elem())

	case TupleTy:
		elems, ok := token.FixedSeq()
		if !ok || len(elems) != len(t.TupleElems) {
			return nil, shapeErr(t, token)
		}
		retval := reflect.New(t.TupleType).Elem()
		for i, elem := range elems {
			value, err := t.TupleElems[i].Detokenize(elem)
			if err != nil {
				return nil, err
			}
			retval.Field(i).Set(reflect.ValueOf(value))
		}
		return retval.Interface(), nil

	default:
		return nil, fmt.Errorf("abi: unknown type %v", t.T)
	}
}

// detokenizeSeq fills the given reflect slice or array with the detokenized
// elements.
func (t Type) detokenizeSeq(elems []Token, seq reflect.Value) (interface{}, error) {
	for i, elem := range elems {
		value, err := t.Elem.Detokenize(elem)
		if err != nil {
			return nil, err
		}
		seq.Index(i).Set(reflect.ValueOf(value))
	}
	return seq.Interface(), nil
}

// ReadInteger reads the integer based on its kind and returns the appropriate value.
func ReadInteger(typ Type, b []byte) interface{} {
	if typ.T == UintTy {
		switch typ.Size {
		case 8:
			return b[len(b)-1]
		case 16:
			return binary.BigEndian.Uint16(b[len(b)-2:])
		case 32:
			return binary.BigEndian.Uint32(b[len(b)-4:])
		case 64:
			return binary.BigEndian.Uint64(b[len(b)-8:])
		default:
			// the only case left for unsigned integer is uint256.
			return new(big.Int).SetBytes(b)
		}
	}
	switch typ.Size {
	case 8:
		return int8(b[len(b)-1])
	case 16:
		return int16(binary.BigEndian.Uint16(b[len(b)-2:]))
	case 32:
		return int32(binary.BigEndian.Uint32(b[len(b)-4:]))
	case 64:
		return int64(binary.BigEndian.Uint64(b[len(b)-8:]))
	default:
		// the only case left for integer is int256
		// big.SetBytes can't tell if a number is negative or positive in itself.
		// On EVM, if the returned number > max int256, it is negative.
		// A number is > max int256 if the bit at position 255 is set.
		ret := new(big.Int).SetBytes(b)
		if ret.Bit(255) == 1 {
			ret.Add(MaxUint256, new(big.Int).Neg(ret))
			ret.Add(ret, common.Big1)
			ret.Neg(ret)
		}
		return ret
	}
}

// ReadFixedBytes uses reflection to create a fixed array to be read from.
func ReadFixedBytes(t Type, word []byte) (interface{}, error) {
	if t.T != FixedBytesTy {
		return nil, fmt.Errorf("abi: invalid type in call to make fixed byte array")
	}
	array := reflect.New(t.GetType()).Elem()
	reflect.Copy(array, reflect.ValueOf(word[0:t.Size]))
	return array.Interface(), nil
}

// A function type is simply the address with the function selection signature
// at the end.
//
// readFunctionType enforces that standard by always presenting it as a
// 24-array (address + sig = 24 bytes)
func readFunctionType(t Type, word Word) (funcTy [24]byte, err error) {
	if t.T != FunctionTy {
		return [24]byte{}, fmt.Errorf("abi: invalid type in call to make function type byte array")
	}
	if err = checkFixedBytes(word, 24); err != nil {
		return [24]byte{}, invalidDataErr("improperly encoded function value: %x", word)
	}
	copy(funcTy[:], word[0:24])
	return funcTy, nil
}

func typeErr(t Type, v reflect.Value) error {
	return fmt.Errorf("abi: cannot use %v as type %v as argument", v.Kind(), t)
}

func shapeErr(t Type, token Token) error {
	return invalidDataErr("token %v does not match type %v", token, t)
}
