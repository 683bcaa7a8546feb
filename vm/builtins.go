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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// builtinFn is a VM-provided procedure. Built-ins are resolved by CALL ahead
// of the user function table and run in the caller's frame.
type builtinFn func(*Instance) error

func builtinTable() map[string]builtinFn {
	return map[string]builtinFn{
		"TRAVERSE_DIR":      (*Instance).builtinTraverseDir,
		"TRAVERSE_DIR_NEXT": (*Instance).builtinTraverseDirNext,
		"READ_FILE":         (*Instance).builtinReadFile,
		"READ_FILE_NEXT":    (*Instance).builtinReadFileNext,
		"PRINT":             (*Instance).builtinPrint,
		"PRINT_STR":         (*Instance).builtinPrintStr,
	}
}

// builtinPrint pops a number and prints it.
func (i *Instance) builtinPrint() error {
	v, err := i.pop()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(i.output, ">>>>> %d\n", v); err != nil {
		return errors.Wrap(err, "PRINT")
	}
	return nil
}

// builtinPrintStr pops a string and prints it.
func (i *Instance) builtinPrintStr() error {
	s, err := i.popString()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(i.output, ">>>>> %s\n", s); err != nil {
		return errors.Wrap(err, "PRINT_STR")
	}
	return nil
}

// builtinReadFile pops a file path and registers a line iterator over the
// file. The path is pushed back below the iterator id for the caller's
// convenience.
func (i *Instance) builtinReadFile() error {
	name, err := i.popString()
	if err != nil {
		return err
	}
	lines, err := openLineIter(name)
	if err != nil {
		return err
	}
	if err := i.pushString(name); err != nil {
		lines.f.Close()
		return err
	}
	return i.addDynamicObject(&dynObject{lines: lines})
}

// builtinReadFileNext pops a line iterator id and pushes the next line
// followed by 1, or 0 only on exhaustion.
func (i *Instance) builtinReadFileNext() error {
	obj, err := i.getDynamicObject()
	if err != nil {
		return err
	}
	if obj.lines == nil {
		return errors.New("fatal: invalid dynamic object")
	}
	line, ok, err := obj.lines.next()
	if err != nil {
		return err
	}
	if !ok {
		return i.push(0)
	}
	if err := i.pushString(line); err != nil {
		return err
	}
	return i.push(1)
}

// builtinTraverseDir pops a directory path and registers a directory
// iterator, pushing its id.
func (i *Instance) builtinTraverseDir() error {
	name, err := i.popString()
	if err != nil {
		return err
	}
	dir, err := openDirIter(name)
	if err != nil {
		return err
	}
	return i.addDynamicObject(&dynObject{dir: dir})
}

// builtinTraverseDirNext pops a directory iterator id. On a next entry it
// pushes the entry path, the extension (or 0 if none), 1 if the entry is a
// directory else 0, and a final 1. On exhaustion it pushes 0 only.
func (i *Instance) builtinTraverseDirNext() error {
	obj, err := i.getDynamicObject()
	if err != nil {
		return err
	}
	if obj.dir == nil {
		return errors.New("fatal: invalid dynamic object")
	}
	e, ok, err := obj.dir.next()
	if err != nil {
		return err
	}
	if !ok {
		return i.push(0)
	}

	path := filepath.Join(obj.dir.dir, e.Name())
	if err := i.pushString(path); err != nil {
		return err
	}
	if ext := strings.TrimPrefix(filepath.Ext(e.Name()), "."); ext != "" {
		if err := i.pushString(ext); err != nil {
			return err
		}
	} else {
		if err := i.push(0); err != nil {
			return err
		}
	}
	isDir := Cell(0)
	if e.IsDir() {
		isDir = 1
	}
	if err := i.push(isDir); err != nil {
		return err
	}
	return i.push(1)
}
