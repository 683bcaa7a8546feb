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

import "github.com/pkg/errors"

// push pushes the argument on top of the operand stack.
func (i *Instance) push(v Cell) error {
	if i.sp+1 >= len(i.stack) {
		return errors.New("fatal: out of memory")
	}
	i.sp++
	i.stack[i.sp] = v
	return nil
}

// pop pops the value on top of the operand stack and returns it.
func (i *Instance) pop() (Cell, error) {
	if i.sp < 0 {
		return 0, errors.New("Fatal: stack is empty.")
	}
	i.sp--
	return i.stack[i.sp+1], nil
}

// Run executes instructions until the program halts. If an error occurs, the
// instruction pointer is left on the instruction that triggered it.
func (i *Instance) Run() error {
	if i.halted {
		return errors.New("Program is already ended.")
	}
	for !i.halted {
		if err := i.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single instruction. Jumps, calls and returns set the
// instruction pointer themselves; any handler that leaves it untouched falls
// through to the next instruction.
func (i *Instance) Step() error {
	if i.ip < 0 || i.ip >= len(i.prog.Instructions) {
		return errors.Errorf("Fatal: instruction pointer %d out of range", i.ip)
	}
	ins := i.prog.Instructions[i.ip]

	prevIP := i.ip
	var err error
	switch ins.Op {
	case OpCall:
		err = i.call(ins.Str)
	case OpRetValue:
		err = i.retValue()
	case OpRet:
		err = i.ret()
	case OpMul:
		err = i.mul()
	case OpAdd:
		err = i.add()
	case OpIncr:
		err = i.incr()
	case OpDecr:
		err = i.decr()
	case OpLoadVal:
		err = i.push(ins.Num)
	case OpReadVar:
		err = i.readVar(ins.Str)
	case OpWriteVar:
		err = i.writeVar(ins.Str)
	case OpPushStr:
		err = i.pushString(ins.Str)
	case OpPopStr:
		_, err = i.popString()
	case OpJe:
		err = i.branch(ins.Num, func(v Cell) bool { return v == 0 })
	case OpJne:
		err = i.branch(ins.Num, func(v Cell) bool { return v != 0 })
	case OpJg:
		err = i.branch(ins.Num, func(v Cell) bool { return v == 1 })
	case OpJl:
		err = i.branch(ins.Num, func(v Cell) bool { return v == -1 })
	case OpJmp:
		err = i.jmp(ins.Num)
	case OpCmp:
		err = i.cmp()
	case OpCmpStr:
		err = i.cmpStr()
	case OpHalt:
		i.halted, i.exitCode = true, ins.Num
	case OpNop:
	default:
		err = errors.Errorf("Fatal: unknown instruction %v", ins.Op)
	}
	if err != nil {
		return errors.Wrapf(err, "@ip=%d %v", prevIP, ins.Op)
	}

	// A jump, call or return moved the ip. Leave it alone then.
	if prevIP == i.ip {
		i.ip++
	}
	i.insCount++
	return nil
}

// jmp interprets the operand as a backward distance: JMP 2 moves two
// instructions up, forward jumps take negative operands.
func (i *Instance) jmp(count Cell) error {
	if int(count) > i.ip {
		return errors.New("Invalid jump.")
	}
	newIP := i.ip - int(count)
	if newIP >= len(i.prog.Instructions) {
		return errors.New("Invalid jump.")
	}
	i.ip = newIP
	return nil
}

// branch pops the previous comparison result and jumps when taken says so.
func (i *Instance) branch(count Cell, taken func(Cell) bool) error {
	v, err := i.pop()
	if err != nil {
		return err
	}
	if !taken(v) {
		return nil
	}
	return i.jmp(count)
}

func (i *Instance) cmp() error {
	rhs, err := i.pop()
	if err != nil {
		return err
	}
	lhs, err := i.pop()
	if err != nil {
		return err
	}
	switch {
	case lhs == rhs:
		return i.push(0)
	case lhs > rhs:
		return i.push(1)
	default:
		return i.push(-1)
	}
}

func (i *Instance) add() error {
	if i.sp < 1 {
		return errors.New("Fatal: stack is smaller than 2")
	}
	lhs, _ := i.pop()
	rhs, _ := i.pop()
	return i.push(lhs + rhs)
}

func (i *Instance) mul() error {
	if i.sp < 1 {
		return errors.New("Fatal: stack is smaller than 2")
	}
	lhs, _ := i.pop()
	rhs, _ := i.pop()
	return i.push(lhs * rhs)
}

func (i *Instance) incr() error {
	v, err := i.pop()
	if err != nil {
		return err
	}
	return i.push(v + 1)
}

func (i *Instance) decr() error {
	v, err := i.pop()
	if err != nil {
		return err
	}
	return i.push(v - 1)
}

// writeVar pops a value and binds it to name in the current frame's locals.
func (i *Instance) writeVar(name string) error {
	v, err := i.pop()
	if err != nil {
		return err
	}
	if i.fp < 0 {
		return errors.New("Fatal: no active frame")
	}
	i.frames[i.fp].vars[name] = v
	return nil
}

func (i *Instance) readVar(name string) error {
	if i.fp < 0 {
		return errors.New("Fatal: no active frame")
	}
	v, ok := i.frames[i.fp].vars[name]
	if !ok {
		return errors.Errorf("Variable '%s' does not exist.", name)
	}
	return i.push(v)
}

// call resolves built-ins ahead of the user function table. Built-ins run in
// the caller's frame; user functions get a fresh frame.
func (i *Instance) call(name string) error {
	if fn, ok := i.builtins[name]; ok {
		return fn(i)
	}
	fn, ok := i.prog.FnTable[name]
	if !ok {
		return errors.Errorf("Function '%s' does not exist.", name)
	}
	// ip + 1: resume right after the call
	i.frames = append(i.frames, newFrame(i.ip+1))
	i.fp++
	i.ip = fn.Ptr
	return nil
}

func (i *Instance) retValue() error {
	if i.fp < 0 {
		return errors.New("Fatal: unexpected return")
	}
	f := i.frames[i.fp]
	v, err := i.pop()
	if err != nil {
		return err
	}
	f.retValue, f.hasRetValue = v, true
	i.popFrame()
	i.ip = f.retAddr
	return i.push(v)
}

func (i *Instance) ret() error {
	if i.fp < 0 {
		return errors.New("Fatal: unexpected return")
	}
	f := i.frames[i.fp]
	i.popFrame()
	i.ip = f.retAddr
	return nil
}

// popFrame destroys the top frame and releases the dynamic objects it owns.
func (i *Instance) popFrame() {
	f := i.frames[i.fp]
	i.frames = i.frames[:i.fp]
	i.fp--
	f.close()
}
