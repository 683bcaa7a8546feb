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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aeryz/bci/asm"
	"github.com/aeryz/bci/vm"
	"github.com/pkg/errors"
)

var debug bool

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "Stack: %v, Frames: %d\n", i.Data(), i.Frames())
	}
	os.Exit(1)
}

func main() {
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	dump := flag.Bool("dump", false, "print the parsed bytecode listing instead of executing")
	execStats := flag.Bool("stats", false, "print performance statistics upon exit")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "A bci program file should be provided.")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		atExit(nil, errors.Wrap(err, "open failed"))
	}
	prog, err := asm.Parse(f)
	f.Close()
	if err != nil {
		atExit(nil, err)
	}

	if *dump {
		atExit(nil, dumpBytecode(prog, os.Stdout))
		return
	}

	stdout := bufio.NewWriter(os.Stdout)
	i, err := vm.New(prog, vm.Output(stdout))
	if err != nil {
		atExit(nil, err)
	}

	start := time.Now()
	err = i.Run()
	stdout.Flush()
	if *execStats {
		delta := time.Since(start)
		fmt.Fprintf(os.Stderr, "Executed %d instructions in %v (%.3f MHz).\n", i.InstructionCount(), delta,
			float64(i.InstructionCount())/float64(delta)*float64(time.Second)/1e6)
	}
	atExit(i, err)

	code, _ := i.Halted()
	fmt.Printf("Process is finished with exit code: %d\n", code)
	os.Exit(int(code))
}
