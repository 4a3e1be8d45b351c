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
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethabi/go-ethabi/common"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
	FunctionTy
)

// Type is the reflection of the supported argument type.
type Type struct {
	Elem *Type
	Size int
	T    byte // Our own type checking

	stringKind string // holds the unparsed string for deriving signatures

	// Tuple relative fields
	TupleElems    []*Type      // Type information of all tuple fields
	TupleRawNames []string     // Raw field names of all tuple fields
	TupleType     reflect.Type // Underlying struct of the tuple
}

var (
	// typeRegex parses the abi sub types
	typeRegex = regexp.MustCompile("([a-zA-Z]+)(([0-9]+)(x([0-9]+))?)?")
)

// NewType creates a new reflection type of abi type given in t. Composite
// shapes are supported directly: "uint256[2][]" yields a dynamic array of
// fixed arrays and "(address,bool)[]" a dynamic array of tuples.
func NewType(t string) (typ Type, err error) {
	// check that array brackets are equal if they exist
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, fmt.Errorf("abi: invalid arg type %q", t)
	}
	typ.stringKind = t

	// if there are brackets, get ready to go into slice/array mode and
	// recursively create the type
	if strings.HasSuffix(t, "]") {
		// recursively embed the type
		i := strings.LastIndex(t, "[")
		embeddedType, err := NewType(t[:i])
		if err != nil {
			return Type{}, err
		}
		// grab the last cell and create a type from there
		sliced := t[i:]
		// grab the slice size with regexp
		re := regexp.MustCompile("[0-9]+")
		intz := re.FindAllString(sliced, -1)

		if len(intz) == 0 {
			// is a slice
			typ.T = SliceTy
			typ.Elem = &embeddedType
			typ.stringKind = embeddedType.stringKind + sliced
		} else if len(intz) == 1 {
			// is an array
			typ.T = ArrayTy
			typ.Elem = &embeddedType
			typ.Size, err = strconv.Atoi(intz[0])
			if err != nil {
				return Type{}, fmt.Errorf("abi: error parsing array size: %v", err)
			}
			typ.stringKind = embeddedType.stringKind + sliced
		} else {
			return Type{}, fmt.Errorf("abi: invalid formatting of array type %q", t)
		}
		return typ, err
	}
	// tuples are parenthesized lists of component types
	if strings.HasPrefix(t, "(") {
		if !strings.HasSuffix(t, ")") {
			return Type{}, fmt.Errorf("abi: invalid tuple type %q", t)
		}
		components, err := splitComposite(t[1 : len(t)-1])
		if err != nil {
			return Type{}, err
		}
		var (
			fields     []reflect.StructField
			elems      []*Type
			names      []string
			expression string // canonical parameter expression
		)
		expression += "("
		for idx, c := range components {
			cType, err := NewType(c)
			if err != nil {
				return Type{}, err
			}
			name := fmt.Sprintf("arg%d", idx)
			fields = append(fields, reflect.StructField{
				Name: ToCamelCase(name), // reflect.StructOf will panic for any unexported field.
				Type: cType.GetType(),
				Tag:  reflect.StructTag("json:\"" + name + "\""),
			})
			elems = append(elems, &cType)
			names = append(names, name)
			expression += cType.stringKind
			if idx != len(components)-1 {
				expression += ","
			}
		}
		expression += ")"

		typ.TupleType = reflect.StructOf(fields)
		typ.TupleElems = elems
		typ.TupleRawNames = names
		typ.T = TupleTy
		typ.stringKind = expression
		return typ, nil
	}

	// parse the type and size of the abi-type.
	matches := typeRegex.FindAllStringSubmatch(t, -1)
	if len(matches) == 0 {
		return Type{}, fmt.Errorf("abi: invalid type %q", t)
	}
	parsedType := matches[0]

	// varSize is the size of the variable. An explicit size of zero is not
	// the same as an omitted one: "uint0" and "bytes0" are invalid while
	// "uint" and "bytes" are the 256 bit and dynamic forms respectively.
	var (
		varSize int
		hasSize = len(parsedType[3]) > 0
	)
	if hasSize {
		var err error
		varSize, err = strconv.Atoi(parsedType[2])
		if err != nil {
			return Type{}, fmt.Errorf("abi: error parsing variable size: %v", err)
		}
	}
	// varType is the parsed abi type
	switch varType := parsedType[1]; varType {
	case "int":
		if !hasSize {
			// "int" is an alias for its canonical representation "int256"
			varSize = 256
			typ.stringKind = "int256"
		}
		if varSize == 0 || varSize%8 != 0 || varSize > 256 {
			return Type{}, fmt.Errorf("abi: invalid size %d for type int", varSize)
		}
		typ.Size = varSize
		typ.T = IntTy
	case "uint":
		if !hasSize {
			varSize = 256
			typ.stringKind = "uint256"
		}
		if varSize == 0 || varSize%8 != 0 || varSize > 256 {
			return Type{}, fmt.Errorf("abi: invalid size %d for type uint", varSize)
		}
		typ.Size = varSize
		typ.T = UintTy
	case "bool":
		typ.T = BoolTy
	case "address":
		typ.Size = 20
		typ.T = AddressTy
	case "string":
		typ.T = StringTy
	case "bytes":
		if !hasSize {
			typ.T = BytesTy
		} else {
			if varSize == 0 || varSize > 32 {
				return Type{}, fmt.Errorf("abi: invalid size %d for type bytes", varSize)
			}
			typ.T = FixedBytesTy
			typ.Size = varSize
		}
	case "function":
		typ.T = FunctionTy
		typ.Size = 24
	default:
		return Type{}, fmt.Errorf("abi: unsupported arg type: %s", t)
	}

	return
}

// splitComposite splits a tuple body into its top level components,
// respecting nested parentheses and array brackets.
func splitComposite(body string) ([]string, error) {
	if body == "" {
		return nil, nil
	}
	var (
		components []string
		depth      int
		last       int
	)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("abi: unbalanced parenthesis in %q", body)
			}
		case ',':
			if depth == 0 {
				components = append(components, body[last:i])
				last = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("abi: unbalanced parenthesis in %q", body)
	}
	components = append(components, body[last:])
	for _, c := range components {
		if c == "" {
			return nil, fmt.Errorf("abi: empty component in %q", body)
		}
	}
	return components, nil
}

// GetType returns the reflection type of the ABI type.
func (t Type) GetType() reflect.Type {
	switch t.T {
	case IntTy:
		return reflectIntType(false, t.Size)
	case UintTy:
		return reflectIntType(true, t.Size)
	case BoolTy:
		return reflect.TypeOf(false)
	case StringTy:
		return reflect.TypeOf("")
	case SliceTy:
		return reflect.SliceOf(t.Elem.GetType())
	case ArrayTy:
		return reflect.ArrayOf(t.Size, t.Elem.GetType())
	case TupleTy:
		return t.TupleType
	case AddressTy:
		return reflect.TypeOf(common.Address{})
	case FixedBytesTy:
		return reflect.ArrayOf(t.Size, reflect.TypeOf(byte(0)))
	case BytesTy:
		return reflect.SliceOf(reflect.TypeOf(byte(0)))
	case FunctionTy:
		return reflect.ArrayOf(24, reflect.TypeOf(byte(0)))
	default:
		panic("abi: invalid type")
	}
}

// String implements Stringer.
func (t Type) String() (out string) {
	return t.stringKind
}

// IsDynamic returns true if the type is dynamic.
// The following types are called "dynamic":
// * bytes
// * string
// * T[] for any T
// * T[k] for any dynamic T and any k >= 0
// * (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
//
// The property is structural and recomputed from the children on every call;
// it is never cached on composite descriptors.
func (t Type) IsDynamic() bool {
	switch t.T {
	case StringTy, BytesTy, SliceTy:
		return true
	case ArrayTy:
		return t.Elem.IsDynamic()
	case TupleTy:
		for _, elem := range t.TupleElems {
			if elem.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// TypeCheck reports whether the token's shape, recursively, matches what this
// type would produce. It does not inspect payload semantics; a boolean word
// holding 0x02 still type checks and is only rejected by Detokenize.
func (t Type) TypeCheck(token Token) bool {
	switch t.T {
	case IntTy, UintTy, BoolTy, AddressTy, FixedBytesTy, FunctionTy:
		return token.Kind() == WordKind
	case BytesTy, StringTy:
		return token.Kind() == PackedSeqKind
	case SliceTy:
		elems, ok := token.DynSeq()
		if !ok {
			return false
		}
		for _, elem := range elems {
			if !t.Elem.TypeCheck(elem) {
				return false
			}
		}
		return true
	case ArrayTy:
		elems, ok := token.FixedSeq()
		if !ok || len(elems) != t.Size {
			return false
		}
		for _, elem := range elems {
			if !t.Elem.TypeCheck(elem) {
				return false
			}
		}
		return true
	case TupleTy:
		elems, ok := token.FixedSeq()
		if !ok || len(elems) != len(t.TupleElems) {
			return false
		}
		for i, elem := range elems {
			if !t.TupleElems[i].TypeCheck(elem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// requiresLengthPrefix returns whether the type requires any sort of length
// prefixing.
func (t Type) requiresLengthPrefix() bool {
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy
}

// isEmptyBytesValidEncoding reports whether the empty byte string is a valid
// encoding of this type. A fixed array of length zero qualifies, as do fixed
// arrays and tuples composed exclusively of such; every other type needs at
// least one word.
func (t Type) isEmptyBytesValidEncoding() bool {
	switch t.T {
	case ArrayTy:
		return t.Size == 0 || t.Elem.isEmptyBytesValidEncoding()
	case TupleTy:
		for _, elem := range t.TupleElems {
			if !elem.isEmptyBytesValidEncoding() {
				return false
			}
		}
		return len(t.TupleElems) > 0
	default:
		return false
	}
}

// getTypeSize returns the size that this type needs to occupy.
// We distinguish static and dynamic types. Static types are encoded in-place
// and dynamic types are encoded at a separately allocated location referenced
// from the current block.
// So for a static variable, the size returned represents the size that the
// variable actually occupies.
// For a dynamic variable, the returned size is fixed 32 bytes, which is used
// to store the location reference for actual value storage.
func getTypeSize(t Type) int {
	if t.T == ArrayTy && !t.Elem.IsDynamic() {
		// Recursively calculate type size if it is a nested array
		if t.Elem.T == ArrayTy || t.Elem.T == TupleTy {
			return t.Size * getTypeSize(*t.Elem)
		}
		return t.Size * 32
	} else if t.T == TupleTy && !t.IsDynamic() {
		total := 0
		for _, elem := range t.TupleElems {
			total += getTypeSize(*elem)
		}
		return total
	}
	return 32
}

// ToCamelCase converts an under-score string to a camel-case string
func ToCamelCase(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}
