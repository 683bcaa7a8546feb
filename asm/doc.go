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

// Package asm parses textual bci programs into vm bytecode.
//
// Grammar:
//
//	program       := (line NEWLINE)*
//	line          := label | instruction | ε
//	label         := NAME ':'
//	instruction   := OP [operand]
//	operand       := NUMBER | NAME | STRING
//	STRING        := "'" <any char except newline or quote>* "'"
//	NUMBER        := '-'? [0-9]+
//	NAME          := [A-Za-z0-9_]+
//
// Whitespace is insignificant within a line; the newline is the statement
// terminator and every source line compiles to exactly one instruction slot.
// A label definition or a blank line compiles to a NOP placeholder so that
// function addresses stay aligned with source line numbering.
//
// Keywords (case-sensitive): LOAD_VAL, WRITE_VAR, READ_VAR, RETURN_VALUE,
// RETURN, MUL, ADD, DECR, INCR, JMP, CALL, HALT, CMP, CMP_STR, JE, JNE, JG,
// JL, PUSH_STR, POP_STR, NOP. Keywords are reserved and cannot name
// functions; built-in function names are not reserved.
//
// Operand type by opcode: LOAD_VAL, HALT and the jumps take a NUMBER;
// WRITE_VAR, READ_VAR and PUSH_STR take a STRING; CALL takes a NAME; all
// other opcodes take no operand.
//
// Jump operands are backward distances: JMP 2 moves two instructions up and
// forward jumps are written with negative operands. A loop is closed by a
// positive JMP back to its head and left early with a negative JE/JNE/JG/JL
// past its tail; the Example of package vm shows both directions.
//
// Every program must define the MAIN function; parsing fails without it. The
// parser prepends a two-instruction prologue (CALL MAIN, HALT 0), so falling
// out of MAIN with RETURN ends the program with exit code 0.
package asm
