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
	"regexp"
	"strings"
)

// MarkdownScanner is a [Scanner] that recognizes explicit Markdown syntax:
// ATX headings, fenced code blocks, pipe tables, and bullet or numbered lists.
// Every other non-blank line becomes its own paragraph.
// The zero value is ready to use.
type MarkdownScanner struct {
	// If Diagnostics is not nil, it is called for each malformed construct
	// the scanner recovered from.
	Diagnostics func(Diagnostic)
}

// Scan classifies lines into blocks.
func (ms *MarkdownScanner) Scan(lines []string) []*Block {
	return scanLines(lines, markdownRules, ms.Diagnostics)
}

// markdownRules is the ordered rule list for [MarkdownScanner].
var markdownRules = []blockRule{
	atxHeadingRule,
	fencedCodeRule,
	pipeTableRule,
	listRule,
	paragraphRule,
}

// explicitMarkupRules are the Markdown rules that a [PlainScanner]
// can be asked to honor before its heuristics.
var explicitMarkupRules = []blockRule{
	atxHeadingRule,
	fencedCodeRule,
	pipeTableRule,
}

var atxHeadingRE = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// atxHeadingRule matches a single-line heading like "## Title".
func atxHeadingRule(s *blockState, start int) (*Block, int, bool) {
	m := atxHeadingRE.FindStringSubmatch(s.lines[start])
	if m == nil {
		return nil, start, false
	}
	return NewHeading(len(m[1]), m[2]), start + 1, true
}

// defaultFenceLanguage is the language of a fenced code block
// that has no info string.
const defaultFenceLanguage = "plaintext"

const fenceMarker = "```"

var openingFenceRE = regexp.MustCompile("^```(\\w+)?$")

// fencedCodeRule matches a code block between "```" fences.
// The end of input closes an unterminated block.
func fencedCodeRule(s *blockState, start int) (*Block, int, bool) {
	m := openingFenceRE.FindStringSubmatch(s.lines[start])
	if m == nil {
		return nil, start, false
	}
	language := m[1]
	if language == "" {
		language = defaultFenceLanguage
	}
	end := start + 1
	for end < len(s.lines) && s.lines[end] != fenceMarker {
		end++
	}
	code := strings.Join(s.lines[start+1:end], "\n")
	if end >= len(s.lines) {
		s.diagnose(start, UnterminatedFence, "code fence not closed before end of input")
		return NewCodeBlock(language, code), end, true
	}
	return NewCodeBlock(language, code), end + 1, true
}

// pipeTableRule matches consecutive lines that start and end with "|".
// Separator rows are dropped.
// A table left without rows consumes its lines but emits nothing.
func pipeTableRule(s *blockState, start int) (*Block, int, bool) {
	if !isTableRow(s.lines[start]) {
		return nil, start, false
	}
	var rows [][]string
	end := start
	for ; end < len(s.lines) && isTableRow(s.lines[end]); end++ {
		cells := splitTableRow(s.lines[end])
		if isSeparatorRow(cells) {
			continue
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		s.diagnose(start, EmptyTable, "table has no rows besides separators")
		return nil, end, true
	}
	b := &Block{kind: TableKind, rows: rows}
	return b, end, true
}

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// splitTableRow splits a row on "|",
// discards the cells outside the outer delimiters,
// and trims the remaining cells.
func splitTableRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 2 {
		return nil
	}
	cells := parts[1 : len(parts)-1]
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// isSeparatorRow reports whether every cell consists only of
// '-', ':', or whitespace, as in "|---|:--:|".
func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimLeft(cell, "-: \t") != "" {
			return false
		}
	}
	return true
}

// paragraphRule matches any non-blank line.
// It must be the last rule in a list.
func paragraphRule(s *blockState, start int) (*Block, int, bool) {
	trimmed := strings.TrimSpace(s.lines[start])
	if trimmed == "" {
		return nil, start, false
	}
	return NewParagraph(trimmed), start + 1, true
}
