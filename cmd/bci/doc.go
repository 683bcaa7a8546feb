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

// The bci command line tool parses and runs a bci program.
//
// Usage:
//
//	bci [flags] program.bci
//
//	-debug
//		  enable debug diagnostics
//	-dump
//		  print the parsed bytecode listing instead of executing
//	-stats
//		  print performance statistics upon exit
//
// The program file is read whole, parsed, and executed to completion. On a
// clean halt the tool prints
//
//	Process is finished with exit code: N
//
// and exits with the halt code N. A parse or execution error is printed to
// stderr and the tool exits with status 1; with -debug the error includes a
// stack trace and the machine state at the point of failure.
package main
