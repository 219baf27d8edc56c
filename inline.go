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

package textblocks

import (
	"fmt"
	"regexp"
)

// Run is a span of paragraph text with a single style.
type Run struct {
	Kind RunKind
	Text string
}

// RunKind is an enumeration of inline styles.
type RunKind uint8

const (
	PlainRun RunKind = iota
	BoldRun
	ItalicRun
	CodeRun
)

func (kind RunKind) String() string {
	switch kind {
	case PlainRun:
		return "plain"
	case BoldRun:
		return "bold"
	case ItalicRun:
		return "italic"
	case CodeRun:
		return "code"
	default:
		return fmt.Sprintf("RunKind(%d)", uint8(kind))
	}
}

// inlineSpanRE matches the three styled spans, leftmost first.
// Submatches 1, 2, and 3 hold the inner text of
// bold, italic, and code spans respectively.
var inlineSpanRE = regexp.MustCompile("\\*\\*(.*?)\\*\\*|\\*(.*?)\\*|`(.*?)`")

var spanKinds = [...]RunKind{BoldRun, ItalicRun, CodeRun}

// SplitInline splits one line of text into styled runs
// for **bold**, *italic*, and `code` spans.
// Spans do not nest: markers inside a span are kept as text.
// Text outside any span is returned as [PlainRun] runs,
// and adjacent plain text is merged into a single run.
// A span with nothing between its markers is still a styled run
// with empty text, so "a ** b" holds an empty italic run.
func SplitInline(text string) []Run {
	var runs []Run
	addPlain := func(s string) {
		if s == "" {
			return
		}
		if n := len(runs); n > 0 && runs[n-1].Kind == PlainRun {
			runs[n-1].Text += s
			return
		}
		runs = append(runs, Run{Kind: PlainRun, Text: s})
	}

	pos := 0
	for _, m := range inlineSpanRE.FindAllStringSubmatchIndex(text, -1) {
		addPlain(text[pos:m[0]])
		pos = m[1]
		kind, inner := PlainRun, ""
		for i, k := range spanKinds {
			if start, end := m[2*(i+1)], m[2*(i+1)+1]; start >= 0 {
				kind, inner = k, text[start:end]
				break
			}
		}
		runs = append(runs, Run{Kind: kind, Text: inner})
	}
	addPlain(text[pos:])
	return runs
}
