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

import "strconv"

// Cell is the raw type stored in an operand stack slot.
type Cell int32

// Op identifies a bytecode operation.
type Op int

// bci Virtual Machine operations.
const (
	OpNop Op = iota
	OpLoadVal
	OpWriteVar
	OpReadVar
	OpPushStr
	OpPopStr
	OpCall
	OpHalt
	OpCmp
	OpCmpStr
	OpJmp
	OpJe
	OpJne
	OpJg
	OpJl
	OpAdd
	OpMul
	OpIncr
	OpDecr
	OpRetValue
	OpRet
)

var opNames = [...]string{
	"NOP",
	"LOAD_VAL",
	"WRITE_VAR",
	"READ_VAR",
	"PUSH_STR",
	"POP_STR",
	"CALL",
	"HALT",
	"CMP",
	"CMP_STR",
	"JMP",
	"JE",
	"JNE",
	"JG",
	"JL",
	"ADD",
	"MUL",
	"INCR",
	"DECR",
	"RETURN_VALUE",
	"RETURN",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return opNames[op]
}

// Instruction is a single decoded bytecode instruction. Num holds the numeric
// operand of LOAD_VAL, HALT and the jumps; Str holds the name operand of CALL
// and the string operand of WRITE_VAR, READ_VAR and PUSH_STR. Operations with
// no operand leave both zero valued.
type Instruction struct {
	Op  Op
	Num Cell
	Str string
}

// Function is an entry in the function table.
type Function struct {
	Name string
	Ptr  int // instruction index of the label's NOP slot; the body follows it
}

// EntryPoint is the function every program must define.
const EntryPoint = "MAIN"

// Bytecode is a parsed program: a flat instruction array addressed by index,
// plus the function table.
type Bytecode struct {
	Instructions []Instruction
	FnTable      map[string]Function
}

// NewBytecode returns an empty program primed with the two prologue
// instructions. Once MAIN returns, the trailing HALT 0 runs and the program
// ends cleanly.
func NewBytecode() *Bytecode {
	return &Bytecode{
		Instructions: []Instruction{
			{Op: OpCall, Str: EntryPoint},
			{Op: OpHalt, Num: 0},
		},
		FnTable: make(map[string]Function),
	}
}
