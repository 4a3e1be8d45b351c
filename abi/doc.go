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

/*
Package abi implements the Ethereum Contract ABI encoding.

The contract ABI is a word aligned binary format used to pass typed values
across a contract call boundary. Values are serialized into 32 byte words: a
fixed size head holds static values and byte offsets, a variable size tail
holds the payloads of dynamic values (byte strings and runtime length
arrays), with the same head/tail split applied recursively inside nested
dynamic tuples and arrays.

The package is built around three layers:

  - Token, the tagged value tree mirroring the wire shape. A token knows its
    shape (single word, fixed sequence, dynamic sequence, packed bytes) but
    not its logical type.
  - Type, the logical type descriptor (address, uint256, tuples and so on)
    built from a signature string by NewType or ParseSignature. A Type
    validates tokens against itself (TypeCheck) and converts between tokens
    and native Go values (Tokenize, Detokenize).
  - Encode, Decode and DecodeValidate, the stateless codec over the two.
    Decode performs only the checks needed for safety on adversarial input;
    DecodeValidate additionally rejects every non-canonical encoding.

All operations are pure functions without shared state: concurrent callers
need no coordination.
*/
package abi
