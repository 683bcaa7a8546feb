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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/aeryz/bci/asm"
)

// Parse a small program and list the bytecode, prologue included.
func ExampleParse() {
	prog, err := asm.Parse(strings.NewReader(`MAIN:
LOAD_VAL 2
CALL PRINT
HALT 0
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	for pc := range prog.Instructions {
		asm.Disassemble(prog.Instructions, pc, os.Stdout)
		fmt.Println()
	}

	// Output:
	// CALL MAIN
	// HALT 0
	// NOP
	// LOAD_VAL 2
	// CALL PRINT
	// HALT 0
}
