// Copyright 2020 The go-ethabi Authors
// This file is part of go-ethabi.
//
// go-ethabi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethabi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethabi. If not, see <http://www.gnu.org/licenses/>.

// abidump parses ABI encoded call data and prints it in a human readable
// form.
//
// Example:
//
//	abidump --sig 'transfer(address,uint256)' a9059cbb000000000000000000000000ea0e2dc7d65a50e77fc7e84bff3fd2a9e781ff5c0000000000000000000000000000000000000000000000015af1d78b58c40000
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethabi/go-ethabi/abi"
	"github.com/ethabi/go-ethabi/common"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

var (
	sigFlag = &cli.StringFlag{
		Name:  "sig",
		Usage: "method signature to decode against, e.g. 'transfer(address,uint256)'",
	}
	validateFlag = &cli.BoolFlag{
		Name:  "validate",
		Usage: "reject non-canonical encodings (trailing bytes, dirty padding)",
	}
)

var app = &cli.App{
	Name:      "abidump",
	Usage:     "parses the given ABI data and prints the decoded values",
	ArgsUsage: "<hexdata>",
	Flags:     []cli.Flag{sigFlag, validateFlag},
	Action:    dump,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dump(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("one argument needed, the hex encoded call data")
	}
	hexdata := strings.TrimSpace(ctx.Args().First())
	data := common.FromHex(hexdata)
	if len(data) == 0 && hexdata != "0x" && hexdata != "" {
		return fmt.Errorf("invalid hex data")
	}
	if sig := ctx.String(sigFlag.Name); sig != "" {
		return dumpWithSignature(ctx, sig, data)
	}
	return dumpWords(data)
}

func dumpWithSignature(ctx *cli.Context, sig string, data []byte) error {
	name, types, err := abi.ParseSignature(sig)
	if err != nil {
		return err
	}
	id := abi.MethodID(name, types)
	if len(data) < 4 {
		return fmt.Errorf("data too short for a call payload: %d bytes", len(data))
	}
	if !strings.EqualFold(common.Bytes2Hex(data[:4]), common.Bytes2Hex(id[:])) {
		return fmt.Errorf("selector mismatch: data has %x, signature wants %x", data[:4], id)
	}
	decode := abi.Decode
	if ctx.Bool(validateFlag.Name) {
		decode = abi.DecodeValidate
	}
	tokens, err := decode(types, data[4:])
	if err != nil {
		return err
	}
	fmt.Printf("%s  selector %x\n", sig, id)
	for i, t := range types {
		value, err := t.Detokenize(tokens[i])
		if err != nil {
			fmt.Printf("  %-14v %s\n", t.String(), tokens[i].String())
			continue
		}
		fmt.Printf("  %-14v %v\n", t.String(), value)
	}
	return nil
}

// dumpWords prints the raw 32 byte words of the buffer one per line, with the
// decimal interpretation alongside words that fit an unsigned 64 bit integer.
func dumpWords(data []byte) error {
	if len(data)%32 == 4 {
		fmt.Printf("selector   %x\n", data[:4])
		data = data[4:]
	}
	if len(data)%32 != 0 {
		return fmt.Errorf("data length %d is not a multiple of 32", len(data))
	}
	for i := 0; i < len(data); i += 32 {
		word := data[i : i+32]
		n := new(uint256.Int).SetBytes(word)
		if n.IsUint64() {
			fmt.Printf("%08x   %x   (%d)\n", i, word, n.Uint64())
		} else {
			fmt.Printf("%08x   %x\n", i, word)
		}
	}
	return nil
}
