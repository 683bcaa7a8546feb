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

// Package vm implements the bci virtual machine.
//
// The machine executes a flat instruction array against a fixed-capacity
// operand stack of 32-bit cells (1000 by default, see StackSize). Every
// non-built-in CALL pushes a frame carrying the return address, the local
// variables and the dynamic objects created in it; RETURN and RETURN_VALUE
// destroy that frame, which also releases any file or directory handle it
// owns. There is no cross-frame variable scope and no explicit close
// instruction.
//
// Instructions:
//
//	Instruction	Usage			Brief
//	Call		CALL fn_name		Call the function fn_name.
//	Halt		HALT exit-code		Halt the program with exit-code.
//	LoadVal		LOAD_VAL number		Push number on top of the stack.
//	WriteVar	WRITE_VAR 'var_name'	Pop a value and create/modify the variable var_name.
//	ReadVar		READ_VAR 'var_name'	Push the value of the variable var_name.
//	PushStr		PUSH_STR 'text'		Push a string (see below).
//	PopStr		POP_STR			Pop a string and discard it.
//	Cmp		CMP			Pop rhs then lhs, push 0 if equal, 1 if lhs > rhs, -1 if lhs < rhs.
//	CmpStr		CMP_STR			Same as CMP for two strings, byte-lexicographic.
//	Jmp		JMP number		Jump number instructions backward. Negative operands jump forward.
//	Je		JE number		Jump if the previous CMP resulted in equal.
//	Jne		JNE number		Jump if the previous CMP resulted in not-equal.
//	Jg		JG number		Jump if the previous CMP resulted in greater.
//	Jl		JL number		Jump if the previous CMP resulted in less.
//	Add		ADD			Pop two values, push their sum.
//	Mul		MUL			Pop two values, push their product.
//	Incr		INCR			Pop a value, push value+1.
//	Decr		DECR			Pop a value, push value-1.
//	RetValue	RETURN_VALUE		Pop a value, return to the caller and push it there.
//	Ret		RETURN			Return to the caller.
//	Nop		NOP			Do nothing. Blank lines and labels compile to nops.
//
// Strings are packed onto the integer stack, four bytes per cell, with the
// byte length pushed last, so the top cell always carries the length.
// PUSH_STR followed by POP_STR restores the stack exactly.
//
// Built-in functions are resolved by CALL before the user function table and
// run in the caller's frame:
//
//	PRINT			pop a number, write ">>>>> n".
//	PRINT_STR		pop a string, write ">>>>> s".
//	READ_FILE		pop a path, open it, push the path back and then
//				the id of a line iterator over the file.
//	READ_FILE_NEXT		pop a line iterator id; push the next line then 1,
//				or 0 only when exhausted.
//	TRAVERSE_DIR		pop a path, push the id of a directory iterator.
//	TRAVERSE_DIR_NEXT	pop a directory iterator id; push path, extension
//				(or 0 if none), 1 if directory else 0, then 1; or
//				0 only when exhausted.
//
// Note that READ_FILE leaves the path string on the stack beneath the
// iterator id.
//
// Entry point is the MAIN function; the two-instruction prologue calls it and
// halts with code 0 when it returns. Every piece of code lives under a
// function, there is no global code or variable mechanism. Improper use of
// the stack or of the call/return flow aborts execution with an error.
package vm
