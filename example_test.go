// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package textblocks_test

import (
	"fmt"
	"os"

	"zombiezen.com/go/textblocks"
)

func Example() {
	blocks := textblocks.Parse([]byte("# Notes\n\nHello, **World**!\n"), textblocks.MarkdownMode)
	textblocks.RenderHTML(os.Stdout, blocks)
	fmt.Println()
	// Output:
	// <h1>Notes</h1>
	// <p>Hello, <strong>World</strong>!</p>
}

func ExamplePlainScanner() {
	lines := []string{
		"UNIT-1: BASICS",
		"Program to print a greeting",
		"class Hello {",
		"    void greet() {",
		"    }",
		"}",
		"- short",
		"- sweet",
	}
	for _, b := range new(textblocks.PlainScanner).Scan(lines) {
		fmt.Println(b.Kind(), b.Lines())
	}
	// Output:
	// heading [0,1)
	// heading [1,2)
	// code [2,6)
	// list [6,8)
}

func ExampleMarkdownScanner_diagnostics() {
	s := &textblocks.MarkdownScanner{
		Diagnostics: func(d textblocks.Diagnostic) {
			fmt.Println("warning:", d)
		},
	}
	blocks := s.Scan([]string{"```go", "fmt.Println()"})
	fmt.Printf("%s %q\n", blocks[0].Language(), blocks[0].Code())
	// Output:
	// warning: line 1: code fence not closed before end of input
	// go "fmt.Println()"
}

func ExampleSplitInline() {
	for _, run := range textblocks.SplitInline("Use `go test` *often*.") {
		fmt.Printf("%v %q\n", run.Kind, run.Text)
	}
	// Output:
	// plain "Use "
	// code "go test"
	// plain " "
	// italic "often"
	// plain "."
}
