// This file is part of bci - https://github.com/aeryz/bci
//
// Copyright 2022 The bci Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "github.com/pkg/errors"

// Strings live on the same stack as numbers. Four bytes of the string are
// packed little-endian into each cell and the byte length is pushed last, so
// the top of stack always carries the length and the cells below the packed
// bytes:
//
//	PUSH_STR 'hello world!'
//	| h e l l | o _ w o | r l d ! | (spare) | 12 |
//
// pushString reserves len(s)/4+1 cells below the length cell (one cell is
// left half-used unless the length is a multiple of four, in which case a
// whole spare cell keeps the arithmetic uniform with popString).
func (i *Instance) pushString(s string) error {
	if len(s) == 0 {
		return i.push(0)
	}
	if i.sp+len(s)/4+2 >= len(i.stack) {
		return errors.New("fatal: out of memory")
	}

	base := i.sp + 1
	for c := base; c <= base+len(s)/4; c++ {
		i.stack[c] = 0
	}
	for n := 0; n < len(s); n++ {
		i.stack[base+n/4] |= Cell(s[n]) << (8 * (n % 4))
	}
	i.sp += len(s)/4 + 1

	return i.push(Cell(len(s)))
}

// popString is the exact inverse of pushString.
func (i *Instance) popString() (string, error) {
	strLen, err := i.pop()
	if err != nil {
		return "", err
	}
	if strLen < 0 {
		return "", errors.New("fatal: negative strlen.")
	}
	if strLen == 0 {
		return "", nil
	}

	memLen := int(strLen)/4 + 1
	if i.sp-memLen+1 < 0 {
		return "", errors.New("fatal: not enough stack.")
	}
	i.sp -= memLen

	out := make([]byte, strLen)
	base := i.sp + 1
	for n := range out {
		out[n] = byte(i.stack[base+n/4] >> (8 * (n % 4)))
	}
	return string(out), nil
}

// cmpStr compares two strings lexicographically by byte.
func (i *Instance) cmpStr() error {
	rhs, err := i.popString()
	if err != nil {
		return err
	}
	lhs, err := i.popString()
	if err != nil {
		return err
	}
	switch {
	case lhs == rhs:
		return i.push(0)
	case lhs > rhs:
		return i.push(1)
	default:
		return i.push(-1)
	}
}
