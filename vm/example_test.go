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

package vm_test

import (
	"fmt"
	"strings"

	"github.com/aeryz/bci/asm"
	"github.com/aeryz/bci/vm"
)

// Compute 5! with a loop and print it.
func Example() {
	program := `MAIN:
LOAD_VAL 5
WRITE_VAR 'inp'
READ_VAR 'inp'
WRITE_VAR 'result'
READ_VAR 'inp'
LOAD_VAL 1
CMP
JE -9
READ_VAR 'inp'
DECR
WRITE_VAR 'inp'
READ_VAR 'inp'
READ_VAR 'result'
MUL
WRITE_VAR 'result'
JMP 11
READ_VAR 'result'
CALL PRINT
HALT 0
`
	prog, err := asm.Parse(strings.NewReader(program))
	if err != nil {
		fmt.Println(err)
		return
	}
	i, err := vm.New(prog)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = i.Run(); err != nil {
		fmt.Println(err)
		return
	}

	// Output:
	// >>>>> 120
}
