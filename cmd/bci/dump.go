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

package main

import (
	"fmt"
	"io"

	"github.com/aeryz/bci/asm"
	"github.com/aeryz/bci/internal/errio"
	"github.com/aeryz/bci/vm"
)

// dumpBytecode writes the program listing with instruction addresses and
// function labels to the specified io.Writer.
func dumpBytecode(b *vm.Bytecode, w io.Writer) error {
	labels := make(map[int]string, len(b.FnTable))
	for _, f := range b.FnTable {
		labels[f.Ptr] = f.Name
	}

	ew := errio.NewErrWriter(w)
	for pc := range b.Instructions {
		if name, ok := labels[pc]; ok {
			fmt.Fprintf(ew, "%s:\n", name)
		}
		fmt.Fprintf(ew, "%4d\t", pc)
		asm.Disassemble(b.Instructions, pc, ew)
		ew.Write([]byte{'\n'})
	}
	return ew.Err
}
