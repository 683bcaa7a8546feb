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

package asm

import (
	"io"
	"strconv"

	"github.com/aeryz/bci/vm"
	"github.com/pkg/errors"
)

// Parse compiles a program read from the supplied io.Reader and returns the
// resulting bytecode and error if any.
func Parse(r io.Reader) (*vm.Bytecode, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	p := &parser{lex: NewLexer(src)}
	return p.parse()
}

// Disassemble writes the instruction at position pc in source syntax to the
// specified io.Writer.
func Disassemble(i []vm.Instruction, pc int, w io.Writer) {
	ins := i[pc]
	io.WriteString(w, ins.Op.String())
	switch ins.Op {
	case vm.OpLoadVal, vm.OpHalt, vm.OpJmp, vm.OpJe, vm.OpJne, vm.OpJg, vm.OpJl:
		w.Write([]byte{' '})
		io.WriteString(w, strconv.Itoa(int(ins.Num)))
	case vm.OpCall:
		w.Write([]byte{' '})
		io.WriteString(w, ins.Str)
	case vm.OpWriteVar, vm.OpReadVar, vm.OpPushStr:
		w.Write([]byte{' ', '\''})
		io.WriteString(w, ins.Str)
		w.Write([]byte{'\''})
	}
}
