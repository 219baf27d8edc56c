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

// Package textblocks splits plain text or Markdown
// into an ordered sequence of typed content blocks:
// headings, code blocks, tables, lists, and paragraphs.
//
// Two scanners produce the same [Block] taxonomy.
// [MarkdownScanner] recognizes explicit Markdown syntax
// and [PlainScanner] recognizes implicit structure
// in text that has no markup at all.
// Scanning never fails: any input produces a (possibly empty) sequence.
package textblocks

import (
	"fmt"
	"strings"
)

// A Scanner classifies lines of text into an ordered sequence of blocks.
// Implementations must not retain or modify lines
// and must be safe to call from multiple goroutines
// as long as their fields are not modified concurrently.
type Scanner interface {
	Scan(lines []string) []*Block
}

// Mode selects which [Scanner] [Parse] uses.
type Mode int8

const (
	// PlainMode uses a [PlainScanner] that also honors explicit Markdown.
	PlainMode Mode = iota
	// MarkdownMode uses a [MarkdownScanner].
	MarkdownMode
)

// ParseMode converts "plain" or "markdown" (case-insensitive) into a [Mode].
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "text", "":
		return PlainMode, nil
	case "markdown", "md":
		return MarkdownMode, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case PlainMode:
		return "plain"
	case MarkdownMode:
		return "markdown"
	default:
		return fmt.Sprintf("Mode(%d)", int8(m))
	}
}

// NewScanner returns the default scanner for the given mode.
func NewScanner(mode Mode) Scanner {
	if mode == MarkdownMode {
		return new(MarkdownScanner)
	}
	return &PlainScanner{HonorMarkdown: true}
}

// Parse splits source into lines and scans them
// with the default scanner for mode.
func Parse(source []byte, mode Mode) []*Block {
	return NewScanner(mode).Scan(SplitLines(source))
}

// SplitLines splits source into lines on "\n".
// Carriage returns at the end of a line
// are treated as part of the line ending.
// All other bytes, NUL included, are kept as they are.
// Empty input has no lines.
func SplitLines(source []byte) []string {
	if len(source) == 0 {
		return nil
	}
	lines := strings.Split(string(source), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// Diagnostic describes input that a scanner recovered from.
// Diagnostics never change the blocks a scanner emits.
type Diagnostic struct {
	// Line is the 0-based line where the problem starts.
	Line    int
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line+1, d.Message)
}

// DiagnosticKind is an enumeration of recovered conditions.
type DiagnosticKind int8

const (
	// UnterminatedFence reports a fenced code block closed by the end of input.
	UnterminatedFence DiagnosticKind = 1 + iota
	// EmptyTable reports a pipe table whose rows were all separators.
	EmptyTable
	// AbandonedCodeRun reports a plain-text code run whose braces never balanced.
	AbandonedCodeRun
)

func (kind DiagnosticKind) String() string {
	switch kind {
	case UnterminatedFence:
		return "unterminated-fence"
	case EmptyTable:
		return "empty-table"
	case AbandonedCodeRun:
		return "abandoned-code-run"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int8(kind))
	}
}

// blockState is the cursor state a rule sees.
// Rules may read any line but must not keep state between calls
// that affects the blocks they produce.
type blockState struct {
	lines []string
	warn  func(Diagnostic)

	// abandonedEnd is the end of the lines covered
	// by the last abandoned code run.
	abandonedEnd int
}

func (s *blockState) diagnose(line int, kind DiagnosticKind, format string, args ...any) {
	if s.warn == nil {
		return
	}
	s.warn(Diagnostic{
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// A blockRule attempts to classify the lines starting at start.
// If the rule does not apply, it returns ok == false.
// Otherwise, it returns the cursor position after the lines it consumed
// and the block those lines produced,
// which may be nil if the lines produce nothing.
type blockRule func(s *blockState, start int) (b *Block, next int, ok bool)

// scanLines runs rules in order at every non-blank cursor position.
// The first rule that matches wins.
func scanLines(lines []string, rules []blockRule, warn func(Diagnostic)) []*Block {
	s := &blockState{lines: lines, warn: warn}
	var blocks []*Block
	for i := 0; i < len(lines); {
		if isBlankLine(lines[i]) {
			i++
			continue
		}
		found := false
		for _, rule := range rules {
			b, next, ok := rule(s, i)
			if !ok {
				continue
			}
			if next <= i {
				// A rule that claims a match must consume its first line.
				next = i + 1
			}
			if b != nil {
				blocks = append(blocks, b.withLines(i, next))
			}
			i = next
			found = true
			break
		}
		if !found {
			i++
		}
	}
	return blocks
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
