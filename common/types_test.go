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

package common

import (
	"fmt"
	"math/big"
	"strings"
	"testing"
)

func TestHashSetBytes(t *testing.T) {
	// Short input pads on the left.
	h := BytesToHash([]byte{0x01})
	if h[31] != 0x01 || h[0] != 0 {
		t.Errorf("short input not left padded: %x", h)
	}
	// Long input crops from the left.
	long := make([]byte, 40)
	long[0] = 0xff
	long[39] = 0x01
	h = BytesToHash(long)
	if h[31] != 0x01 || h[0] == 0xff {
		t.Errorf("long input not cropped from the left: %x", h)
	}
}

func TestHashHelpers(t *testing.T) {
	h := BigToHash(big.NewInt(5))
	if h.Big().Cmp(big.NewInt(5)) != 0 {
		t.Errorf("BigToHash/Big round trip failed: %v", h)
	}
	if !(Hash{}).IsZero() {
		t.Error("zero hash not reported as zero")
	}
	if h.IsZero() {
		t.Error("non-zero hash reported as zero")
	}
	if (Hash{}).Cmp(h) >= 0 {
		t.Error("zero hash should compare below 5")
	}
	if got := HexToHash("0x5").Hex(); got != "0x0000000000000000000000000000000000000000000000000000000000000005" {
		t.Errorf("Hex() = %s", got)
	}
}

func TestAddressHexChecksum(t *testing.T) {
	// EIP-55 test vectors.
	tests := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}
	for _, want := range tests {
		addr := HexToAddress(want)
		if got := addr.Hex(); got != want {
			t.Errorf("checksum mismatch: have %s, want %s", got, want)
		}
	}
}

func TestAddressFormat(t *testing.T) {
	addr := HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	if got := fmt.Sprintf("%v", addr); got != "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed" {
		t.Errorf("%%v = %s", got)
	}
	if got := fmt.Sprintf("%x", addr); got != "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed" {
		t.Errorf("%%x = %s", got)
	}
	if got := fmt.Sprintf("%X", addr); got != "5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED" {
		t.Errorf("%%X = %s", got)
	}
	if got := fmt.Sprintf("%q", addr); got != `"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"` {
		t.Errorf("%%q = %s", got)
	}
	if got := fmt.Sprintf("%#x", addr); !strings.HasPrefix(got, "0x") {
		t.Errorf("%%#x lacks prefix: %s", got)
	}
}

func TestIsHexAddress(t *testing.T) {
	tests := []struct {
		str string
		exp bool
	}{
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0X5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae", false},   // too short
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaedd", false}, // too long
		{"0xzaaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},  // non-hex
	}
	for _, test := range tests {
		if result := IsHexAddress(test.str); result != test.exp {
			t.Errorf("IsHexAddress(%s) == %v; expected %v", test.str, result, test.exp)
		}
	}
}

func TestAddressSetBytes(t *testing.T) {
	// Long input crops from the left, matching hash semantics.
	long := make([]byte, 32)
	long[31] = 0x01
	addr := BytesToAddress(long)
	if addr[19] != 0x01 {
		t.Errorf("long input not cropped: %x", addr)
	}
}
