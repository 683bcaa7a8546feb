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
	"fmt"
	"strconv"

	"github.com/aeryz/bci/vm"
	"github.com/pkg/errors"
)

// TokenKind discriminates Token variants.
type TokenKind int

// Token kinds produced by the Lexer.
const (
	TokInstruction TokenKind = iota
	TokName
	TokString
	TokNumber
	TokColon
	TokNewline
)

// Token is a single lexeme of a bci program.
type Token struct {
	Kind TokenKind
	Op   vm.Op   // operation, for TokInstruction
	Num  vm.Cell // value, for TokNumber
	Text string  // name or literal text, for TokName and TokString
}

func (t *Token) String() string {
	switch t.Kind {
	case TokInstruction:
		return t.Op.String()
	case TokName:
		return fmt.Sprintf("name %q", t.Text)
	case TokString:
		return fmt.Sprintf("string '%s'", t.Text)
	case TokNumber:
		return fmt.Sprintf("number %d", t.Num)
	case TokColon:
		return "':'"
	case TokNewline:
		return `'\n'`
	}
	return "unknown token"
}

// Reserved keywords of the bytecode. Built-in function names are not reserved
// keywords.
var keywords = map[string]vm.Op{
	"LOAD_VAL":     vm.OpLoadVal,
	"WRITE_VAR":    vm.OpWriteVar,
	"READ_VAR":     vm.OpReadVar,
	"RETURN_VALUE": vm.OpRetValue,
	"RETURN":       vm.OpRet,
	"MUL":          vm.OpMul,
	"ADD":          vm.OpAdd,
	"DECR":         vm.OpDecr,
	"INCR":         vm.OpIncr,
	"JMP":          vm.OpJmp,
	"CALL":         vm.OpCall,
	"HALT":         vm.OpHalt,
	"CMP":          vm.OpCmp,
	"CMP_STR":      vm.OpCmpStr,
	"JE":           vm.OpJe,
	"JNE":          vm.OpJne,
	"JG":           vm.OpJg,
	"JL":           vm.OpJl,
	"PUSH_STR":     vm.OpPushStr,
	"POP_STR":      vm.OpPopStr,
	"NOP":          vm.OpNop,
}

// Lexer turns program text into a stream of Tokens.
type Lexer struct {
	src    []byte
	cursor int
}

// NewLexer returns a Lexer over the given program text.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token, or nil at end of input.
func (l *Lexer) Next() (*Token, error) {
	l.trim()

	ch, ok := l.nextChar(false)
	if !ok {
		return nil, nil
	}
	switch {
	case ch == '\'':
		return l.readStrLiteral()
	case ch == ':':
		return &Token{Kind: TokColon}, nil
	case ch == '\n':
		return &Token{Kind: TokNewline}, nil
	case ch >= '0' && ch <= '9' || ch == '-':
		return l.readNumber()
	default:
		return l.readName()
	}
}

// trim skips spaces, tabs, carriage returns and form feeds.
func (l *Lexer) trim() {
	for {
		ch, ok := l.nextChar(true)
		if !ok || ch != ' ' && ch != '\t' && ch != '\r' && ch != '\x0C' {
			return
		}
		l.cursor++
	}
}

// readNumber reads a decimal number, the leading digit or '-' already
// consumed.
func (l *Lexer) readNumber() (*Token, error) {
	start := l.cursor - 1
	for {
		ch, ok := l.nextChar(false)
		if !ok {
			break
		}
		if ch < '0' || ch > '9' {
			l.cursor--
			break
		}
	}

	n, err := strconv.ParseInt(string(l.src[start:l.cursor]), 10, 32)
	if err != nil {
		return nil, errors.Wrap(err, "integer conversion failed")
	}
	return &Token{Kind: TokNumber, Num: vm.Cell(n)}, nil
}

// readStrLiteral reads a literal delimited by single quotes. Literals cannot
// continue past the end of the line.
func (l *Lexer) readStrLiteral() (*Token, error) {
	start := l.cursor
	for {
		ch, ok := l.nextChar(false)
		if !ok || ch == '\n' {
			return nil, errors.New("String literal is not finished properly.")
		}
		if ch == '\'' {
			return &Token{Kind: TokString, Text: string(l.src[start : l.cursor-1])}, nil
		}
	}
}

// readName reads a run of alphanumerics and '_', the first character already
// consumed, and resolves it against the keyword table.
func (l *Lexer) readName() (*Token, error) {
	start := l.cursor - 1
	for {
		ch, ok := l.nextChar(false)
		if !ok {
			break
		}
		if !isNameChar(ch) {
			l.cursor--
			break
		}
	}

	text := string(l.src[start:l.cursor])
	if op, ok := keywords[text]; ok {
		return &Token{Kind: TokInstruction, Op: op}, nil
	}
	return &Token{Kind: TokName, Text: text}, nil
}

func isNameChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_'
}

// nextChar returns the character under the cursor and advances it unless peek
// is set.
func (l *Lexer) nextChar(peek bool) (byte, bool) {
	if l.cursor >= len(l.src) {
		return 0, false
	}
	ch := l.src[l.cursor]
	if !peek {
		l.cursor++
	}
	return ch, true
}
