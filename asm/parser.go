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
	"github.com/aeryz/bci/vm"
	"github.com/pkg/errors"
)

// parser drives the lexer and builds the bytecode program.
type parser struct {
	lex *Lexer
}

// parse translates the token stream into a validated program. One source line
// compiles to exactly one instruction slot: labels and blank lines each
// produce a NOP placeholder, which keeps function addresses stable relative
// to source line numbering.
func (p *parser) parse() (*vm.Bytecode, error) {
	bc := vm.NewBytecode()
	lineCtr := 0

	for {
		tok, err := p.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}

		switch tok.Kind {
		case TokInstruction:
			ins, err := p.parseOperand(tok.Op)
			if err != nil {
				return nil, err
			}
			bc.Instructions = append(bc.Instructions, ins)
		case TokName:
			next, err := p.lex.Next()
			if err != nil {
				return nil, err
			}
			if next == nil || next.Kind != TokColon {
				return nil, errors.New("':' should come after a label")
			}
			if _, ok := bc.FnTable[tok.Text]; ok {
				return nil, errors.Errorf("Function %s is already defined.", tok.Text)
			}
			bc.FnTable[tok.Text] = vm.Function{
				Name: tok.Text,
				// +2 for the two prologue instructions
				Ptr: lineCtr + 2,
			}
			// nop placeholder so that function addresses are not shifted up
			bc.Instructions = append(bc.Instructions, vm.Instruction{Op: vm.OpNop})
		case TokNewline:
			bc.Instructions = append(bc.Instructions, vm.Instruction{Op: vm.OpNop})
			lineCtr++
			continue
		default:
			return nil, errors.Errorf("Expected instruction or label, got %v", tok)
		}

		// the instruction is finished, expect a newline or end of input
		next, err := p.lex.Next()
		if err != nil {
			return nil, err
		}
		if next != nil && next.Kind != TokNewline {
			return nil, errors.Errorf("Expected '\\n', got %v", next)
		}
		lineCtr++
	}

	if _, ok := bc.FnTable[vm.EntryPoint]; !ok {
		return nil, errors.New("Could not find the entry point(MAIN).")
	}
	return bc, nil
}

// parseOperand consumes the operand token prescribed by op, if any, and
// returns the finished instruction.
func (p *parser) parseOperand(op vm.Op) (vm.Instruction, error) {
	switch op {
	case vm.OpLoadVal, vm.OpHalt, vm.OpJmp, vm.OpJe, vm.OpJne, vm.OpJg, vm.OpJl:
		tok, err := p.lex.Next()
		if err != nil {
			return vm.Instruction{}, err
		}
		if tok == nil || tok.Kind != TokNumber {
			return vm.Instruction{}, errors.Errorf("Expected Number, got %v", tok)
		}
		return vm.Instruction{Op: op, Num: tok.Num}, nil

	case vm.OpWriteVar, vm.OpReadVar, vm.OpPushStr:
		tok, err := p.lex.Next()
		if err != nil {
			return vm.Instruction{}, err
		}
		if tok == nil || tok.Kind != TokString {
			return vm.Instruction{}, errors.Errorf("Expected StringLiteral, got %v", tok)
		}
		return vm.Instruction{Op: op, Str: tok.Text}, nil

	case vm.OpCall:
		tok, err := p.lex.Next()
		if err != nil {
			return vm.Instruction{}, err
		}
		if tok == nil || tok.Kind != TokName {
			return vm.Instruction{}, errors.Errorf("Expected Name, got %v", tok)
		}
		return vm.Instruction{Op: op, Str: tok.Text}, nil

	default:
		return vm.Instruction{Op: op}, nil
	}
}
