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
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlainScanner is a [Scanner] that finds implicit structure
// in text without markup: heading-like lines,
// runs of source code (found by brace balance),
// and bulleted or numbered lists.
// Every other non-blank line becomes its own paragraph.
// The zero value runs only the heuristics.
type PlainScanner struct {
	// If HonorMarkdown is true, explicit Markdown headings,
	// fenced code blocks, and pipe tables are recognized
	// before any heuristic is tried.
	HonorMarkdown bool

	// If Diagnostics is not nil, it is called for each construct
	// the scanner started to recognize and then abandoned.
	Diagnostics func(Diagnostic)
}

// Scan classifies lines into blocks.
func (ps *PlainScanner) Scan(lines []string) []*Block {
	rules := plainRules
	if ps.HonorMarkdown {
		rules = markdownPlainRules
	}
	return scanLines(lines, rules, ps.Diagnostics)
}

// plainRules is the ordered rule list for [PlainScanner].
var plainRules = []blockRule{
	headingHeuristicRule,
	codeRunRule,
	listRule,
	paragraphRule,
}

var markdownPlainRules = append(append([]blockRule(nil), explicitMarkupRules...), plainRules...)

// maxHeadingLength is the rune count below which
// a numbered or annotated line may be a heading.
const maxHeadingLength = 100

// Bounds (exclusive) on the rune count of an all-caps section heading.
const (
	minSectionHeadingLength = 5
	maxSectionHeadingLength = 60
)

type headingRule struct {
	pattern *regexp.Regexp
	// match, if not nil, is checked in addition to pattern.
	match func(trimmed string) bool
	level int
}

// headingRules are tried in order against the trimmed line.
// The most specific patterns come first:
// prose and document headers share surface features
// that the later, looser rules would otherwise claim.
var headingRules = []headingRule{
	{
		// "1. Topic Name (10 Marks)"
		pattern: regexp.MustCompile(`(?i)^\d+\.\s+.+\(\d+\s*Marks?\)`),
		level:   1,
	},
	{
		// "Explain inheritance (5 Marks)"
		pattern: regexp.MustCompile(`(?i)\(\d+\s*Marks?\)$`),
		match:   shorterThan(maxHeadingLength),
		level:   1,
	},
	{
		// "10-MARK ANSWER"
		pattern: regexp.MustCompile(`(?i)^\d+-MARK`),
		level:   2,
	},
	{
		// "UNIT-5: FILE HANDLING"
		pattern: regexp.MustCompile(`(?i)^UNIT\s*[-–—]\s*\d+`),
		level:   1,
	},
	{
		// "INTRODUCTION & OVERVIEW"
		pattern: regexp.MustCompile(`^[\p{L}\s&–—-]+$`),
		match:   isSectionHeading,
		level:   2,
	},
	{
		// "Program to reverse a string"
		pattern: regexp.MustCompile(`(?i)^PROGRAM`),
		level:   3,
	},
	{
		// "2. Constructors"
		pattern: regexp.MustCompile(`^\d+\.\s+[A-Z]`),
		match:   shorterThan(maxHeadingLength),
		level:   3,
	},
}

func shorterThan(n int) func(string) bool {
	return func(s string) bool {
		return utf8.RuneCountInString(s) < n
	}
}

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// isSectionHeading reports whether trimmed is written in capitals.
// Scripts without case never qualify.
func isSectionHeading(trimmed string) bool {
	n := utf8.RuneCountInString(trimmed)
	return n > minSectionHeadingLength &&
		n < maxSectionHeadingLength &&
		upperCaser.String(trimmed) == trimmed &&
		lowerCaser.String(trimmed) != trimmed
}

// headingLevel returns the level of the first heading rule
// that matches line, or zero if none match.
func headingLevel(line string) int {
	trimmed := strings.TrimSpace(line)
	for _, rule := range headingRules {
		if !rule.pattern.MatchString(trimmed) {
			continue
		}
		if rule.match != nil && !rule.match(trimmed) {
			continue
		}
		return rule.level
	}
	return 0
}

// headingHeuristicRule matches a single line that looks like a heading.
func headingHeuristicRule(s *blockState, start int) (*Block, int, bool) {
	level := headingLevel(s.lines[start])
	if level == 0 {
		return nil, start, false
	}
	return NewHeading(level, strings.TrimSpace(s.lines[start])), start + 1, true
}

// codeStartKeywords are the prefixes a trimmed line must have
// to begin a plain-text code run.
var codeStartKeywords = []string{
	"import ",
	"public class",
	"class ",
	"public static",
	"private ",
	"protected ",
	"void ",
	"int ",
	"String ",
	"return ",
	"{",
	"}",
}

// Limits on the number of lines in a plain-text code run.
// They bound false positives and pathological input;
// they do not model any language's grammar.
const (
	minCodeRunLines = 3
	maxCodeRunLines = 100
)

// defaultCodeLanguage is the language of a code run
// whose first line gives no better hint.
const defaultCodeLanguage = "java"

// languageHints are checked in order against the first line of a code run.
var languageHints = []struct {
	contains []string
	language string
}{
	{[]string{"import java"}, "java"},
	{[]string{"import ", "from "}, "python"},
	{[]string{"#include"}, "cpp"},
}

func isCodeStart(trimmed string) bool {
	for _, kw := range codeStartKeywords {
		if strings.HasPrefix(trimmed, kw) {
			return true
		}
	}
	return false
}

func inferCodeLanguage(firstLine string) string {
	for _, hint := range languageHints {
		for _, substr := range hint.contains {
			if strings.Contains(firstLine, substr) {
				return hint.language
			}
		}
	}
	return defaultCodeLanguage
}

// codeRunRule matches a run of lines that begins with a code keyword
// and ends where the running count of '{' minus '}' returns to zero
// after at least minCodeRunLines lines.
// A run that does not close within maxCodeRunLines lines,
// or before the end of input, is not a match.
func codeRunRule(s *blockState, start int) (*Block, int, bool) {
	first := strings.TrimSpace(s.lines[start])
	if !isCodeStart(first) {
		return nil, start, false
	}
	balance := 0
	i := start
	for ; i < len(s.lines) && i-start < maxCodeRunLines; i++ {
		line := s.lines[i]
		balance += strings.Count(line, "{") - strings.Count(line, "}")
		if balance == 0 && i-start+1 >= minCodeRunLines {
			code := strings.Join(s.lines[start:i+1], "\n")
			return NewCodeBlock(inferCodeLanguage(first), code), i + 1, true
		}
	}
	// Lines inside an abandoned run are retried as run starts.
	// Only the outermost attempt is reported.
	if start >= s.abandonedEnd {
		s.diagnose(start, AbandonedCodeRun, "code braces not balanced within %d lines", maxCodeRunLines)
	}
	s.abandonedEnd = max(s.abandonedEnd, i)
	return nil, start, false
}

var (
	bulletMarkerRE   = regexp.MustCompile(`^[-•·▪▫→✓✔]\s+`)
	numberedItemRE   = regexp.MustCompile(`^\d+\.\s+[a-z]`)
	numberedMarkerRE = regexp.MustCompile(`^\d+\.\s+`)
)

// isListItem reports whether a trimmed line starts with a bullet glyph,
// or with a number followed by a lowercase word.
// A number followed by a capitalized word is a heading candidate instead.
func isListItem(trimmed string) bool {
	return bulletMarkerRE.MatchString(trimmed) || numberedItemRE.MatchString(trimmed)
}

func stripListMarker(trimmed string) string {
	item := bulletMarkerRE.ReplaceAllLiteralString(trimmed, "")
	return numberedMarkerRE.ReplaceAllLiteralString(item, "")
}

// listRule matches consecutive list items.
// The run ends at the first line that is not an item;
// that line is left for the next rule.
func listRule(s *blockState, start int) (*Block, int, bool) {
	var items []string
	end := start
	for ; end < len(s.lines); end++ {
		trimmed := strings.TrimSpace(s.lines[end])
		if !isListItem(trimmed) {
			break
		}
		items = append(items, stripListMarker(trimmed))
	}
	if len(items) == 0 {
		return nil, start, false
	}
	return &Block{kind: ListKind, items: items}, end, true
}
