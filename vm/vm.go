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

import (
	"io"
	"os"

	"github.com/aeryz/bci/internal/errio"
	"github.com/pkg/errors"
)

const defaultStackSize = 1000

// Option configures an Instance created by New.
type Option func(*Instance) error

// StackSize sets the operand stack size in cells.
func StackSize(size int) Option {
	return func(i *Instance) error {
		if size < 1 {
			return errors.Errorf("invalid stack size %d", size)
		}
		i.stack = make([]Cell, size)
		return nil
	}
}

// Output sets the Writer that PRINT and PRINT_STR write to.
func Output(w io.Writer) Option {
	return func(i *Instance) error { i.output = errio.NewErrWriter(w); return nil }
}

// Instance represents a bci VM instance.
type Instance struct {
	prog     *Bytecode
	ip       int // instruction pointer
	sp       int // operand stack pointer, -1 when empty
	fp       int // frame pointer, -1 when empty
	halted   bool
	exitCode Cell

	stack    []Cell
	frames   []*frame
	builtins map[string]builtinFn
	output   *errio.ErrWriter
	insCount int64
}

// New creates a VM instance ready to execute the given program.
func New(prog *Bytecode, opts ...Option) (*Instance, error) {
	i := &Instance{
		prog:     prog,
		sp:       -1,
		fp:       -1,
		builtins: builtinTable(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.stack == nil {
		i.stack = make([]Cell, defaultStackSize)
	}
	if i.output == nil {
		i.output = errio.NewErrWriter(os.Stdout)
	}
	return i, nil
}

// Data returns the live operand stack. Value changes are reflected in the
// instance's stack, but reslicing will not affect it.
func (i *Instance) Data() []Cell {
	return i.stack[:i.sp+1]
}

// Frames returns the current call depth.
func (i *Instance) Frames() int {
	return i.fp + 1
}

// Halted reports whether the program has halted, and with which exit code.
func (i *Instance) Halted() (code Cell, ok bool) {
	return i.exitCode, i.halted
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
