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
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// frame is the per-call record created on every non-built-in CALL and
// destroyed on RETURN/RETURN_VALUE. Dynamic objects registered in a frame are
// released with it.
type frame struct {
	retAddr     int
	retValue    Cell
	hasRetValue bool
	vars        map[string]Cell
	objs        map[int]*dynObject
	objIndex    int
}

func newFrame(retAddr int) *frame {
	return &frame{
		retAddr: retAddr,
		vars:    make(map[string]Cell),
		objs:    make(map[int]*dynObject),
	}
}

func (f *frame) close() {
	for _, o := range f.objs {
		o.close()
	}
	f.objs = nil
}

// dynObject is a frame-owned handle registered under an integer id. The known
// kinds are closed: a line iterator over an open file and a directory
// iterator. Exactly one of lines and dir is set.
type dynObject struct {
	lines *lineIter
	dir   *dirIter
}

func (o *dynObject) close() {
	if o.lines != nil {
		o.lines.f.Close()
	}
	if o.dir != nil {
		o.dir.f.Close()
	}
}

// lineIter yields the lines of a file without their terminators.
type lineIter struct {
	f *os.File
	s *bufio.Scanner
}

func openLineIter(name string) (*lineIter, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	return &lineIter{f: f, s: bufio.NewScanner(f)}, nil
}

// next returns the next line, or ok=false on exhaustion.
func (l *lineIter) next() (line string, ok bool, err error) {
	if l.s.Scan() {
		return l.s.Text(), true, nil
	}
	if err := l.s.Err(); err != nil {
		return "", false, errors.Wrap(err, "line read failed")
	}
	return "", false, nil
}

// dirIter yields directory entries one at a time.
type dirIter struct {
	f   *os.File
	dir string
}

func openDirIter(name string) (*dirIter, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	return &dirIter{f: f, dir: name}, nil
}

func (d *dirIter) next() (e os.DirEntry, ok bool, err error) {
	ents, err := d.f.ReadDir(1)
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "dir read failed")
	}
	return ents[0], true, nil
}

// addDynamicObject registers obj under the next id in the current frame and
// pushes that id.
func (i *Instance) addDynamicObject(obj *dynObject) error {
	if i.fp < 0 {
		return errors.New("Fatal: no active frame")
	}
	f := i.frames[i.fp]
	index := f.objIndex
	f.objs[index] = obj
	f.objIndex++
	return i.push(Cell(index))
}

// getDynamicObject pops an id and returns the object registered under it in
// the current frame.
func (i *Instance) getDynamicObject() (*dynObject, error) {
	id, err := i.pop()
	if err != nil {
		return nil, err
	}
	if i.fp < 0 {
		return nil, errors.New("Fatal: no active frame")
	}
	obj, ok := i.frames[i.fp].objs[int(id)]
	if !ok {
		return nil, errors.New("fatal: cannot find the dynamic object")
	}
	return obj, nil
}
