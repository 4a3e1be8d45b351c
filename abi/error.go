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
	"errors"
	"fmt"
)

var (
	// ErrInvalidData is returned whenever a buffer cannot be decoded against
	// the expected type shape: malformed shape, out-of-bounds offset or
	// length, non-zero reserved bytes, or non-canonical padding where strict
	// validation was requested.
	ErrInvalidData = errors.New("abi: invalid encoded data")

	// ErrEmptyInput is returned when decoding an empty buffer against types
	// that require at least one word. It is distinct from ErrInvalidData
	// because the common root cause is calling a contract or method that
	// does not exist: JSON-RPC returns 0x in that case.
	ErrEmptyInput = errors.New("abi: empty input data; make sure the contract and method you are calling exist (JSON-RPC returns 0x when they do not)")

	errBadBool = fmt.Errorf("%w: improperly encoded boolean value", ErrInvalidData)
)

// invalidDataErr annotates ErrInvalidData with decode context.
func invalidDataErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, fmt.Sprintf(format, args...))
}
