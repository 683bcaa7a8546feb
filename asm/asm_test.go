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
	"strings"
	"testing"

	"github.com/aeryz/bci/asm"
	"github.com/aeryz/bci/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrologue(t *testing.T) {
	prog, err := asm.Parse(strings.NewReader("MAIN:\nHALT 0\n"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(prog.Instructions), 2)
	assert.Equal(t, vm.Instruction{Op: vm.OpCall, Str: "MAIN"}, prog.Instructions[0])
	assert.Equal(t, vm.Instruction{Op: vm.OpHalt, Num: 0}, prog.Instructions[1])
}

func TestParseFunctionTable(t *testing.T) {
	prog, err := asm.Parse(strings.NewReader("F:\nLOAD_VAL 42\nRETURN_VALUE\nMAIN:\nCALL F\nHALT 0\n"))
	require.NoError(t, err)
	require.Contains(t, prog.FnTable, "F")
	require.Contains(t, prog.FnTable, "MAIN")
	// a label's address is its own nop slot: two prologue instructions plus
	// the count of preceding source lines
	assert.Equal(t, vm.Function{Name: "F", Ptr: 2}, prog.FnTable["F"])
	assert.Equal(t, vm.Function{Name: "MAIN", Ptr: 5}, prog.FnTable["MAIN"])
	assert.Equal(t, vm.OpNop, prog.Instructions[2].Op)
	assert.Equal(t, vm.OpNop, prog.Instructions[5].Op)
}

func TestParseOneSlotPerLine(t *testing.T) {
	// labels and blank lines compile to nop placeholders
	prog, err := asm.Parse(strings.NewReader("MAIN:\n\nLOAD_VAL 1\n\nHALT 0\n"))
	require.NoError(t, err)
	want := []vm.Instruction{
		{Op: vm.OpCall, Str: "MAIN"},
		{Op: vm.OpHalt},
		{Op: vm.OpNop},
		{Op: vm.OpNop},
		{Op: vm.OpLoadVal, Num: 1},
		{Op: vm.OpNop},
		{Op: vm.OpHalt},
	}
	assert.Equal(t, want, prog.Instructions)
}

func TestParseErrors(t *testing.T) {
	data := []struct {
		name string
		src  string
		err  string
	}{
		{"empty", "", "Could not find the entry point(MAIN)."},
		{"no_main", "F:\nRETURN\n", "Could not find the entry point(MAIN)."},
		{"missing_colon", "MAIN\nHALT 0\n", "':' should come after a label"},
		{"redefinition", "F:\nRETURN\nF:\nRETURN\nMAIN:\nHALT 0\n", "Function F is already defined."},
		{"number_operand", "MAIN:\nLOAD_VAL 'x'\n", "Expected Number, got string 'x'"},
		{"string_operand", "MAIN:\nWRITE_VAR 5\n", "Expected StringLiteral, got number 5"},
		{"name_operand", "MAIN:\nCALL 5\n", "Expected Name, got number 5"},
		{"trailing_operand", "MAIN:\nADD 5\n", `Expected '\n', got number 5`},
		{"stray_number", "MAIN:\n5\n", "Expected instruction or label, got number 5"},
		{"stray_colon", "MAIN:\n:\n", "Expected instruction or label, got ':'"},
		{"unterminated_string", "MAIN:\nPUSH_STR 'oops\n", "String literal is not finished properly."},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := asm.Parse(strings.NewReader(d.src))
			require.Error(t, err)
			assert.EqualError(t, err, d.err)
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	src := "F:\nLOAD_VAL 1\nRETURN_VALUE\nMAIN:\nCALL F\nHALT 3\n"
	a, err := asm.Parse(strings.NewReader(src))
	require.NoError(t, err)
	b, err := asm.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseNoTrailingNewline(t *testing.T) {
	prog, err := asm.Parse(strings.NewReader("MAIN:\nHALT 5"))
	require.NoError(t, err)
	last := prog.Instructions[len(prog.Instructions)-1]
	assert.Equal(t, vm.Instruction{Op: vm.OpHalt, Num: 5}, last)
}

func TestDisassemble(t *testing.T) {
	data := []struct {
		ins  vm.Instruction
		want string
	}{
		{vm.Instruction{Op: vm.OpLoadVal, Num: 10}, "LOAD_VAL 10"},
		{vm.Instruction{Op: vm.OpJmp, Num: -3}, "JMP -3"},
		{vm.Instruction{Op: vm.OpPushStr, Str: "hi"}, "PUSH_STR 'hi'"},
		{vm.Instruction{Op: vm.OpWriteVar, Str: "x"}, "WRITE_VAR 'x'"},
		{vm.Instruction{Op: vm.OpCall, Str: "MAIN"}, "CALL MAIN"},
		{vm.Instruction{Op: vm.OpAdd}, "ADD"},
		{vm.Instruction{Op: vm.OpNop}, "NOP"},
	}
	for _, d := range data {
		var sb strings.Builder
		asm.Disassemble([]vm.Instruction{d.ins}, 0, &sb)
		assert.Equal(t, d.want, sb.String())
	}
}
