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

// Package export converts a block sequence into a word-processor document:
// styled paragraphs made of runs, and tables.
// The document can be written as a WordprocessingML (.docx) package.
package export

import (
	"errors"
	"strconv"

	"zombiezen.com/go/textblocks"
)

// ErrEmpty is returned by [Build] when there are no blocks to export.
var ErrEmpty = errors.New("nothing to export")

// DefaultMaxHeadingLevel is the deepest heading style used
// when [Options.MaxHeadingLevel] is zero.
const DefaultMaxHeadingLevel = 3

// DefaultCodeFont is the font used for code
// when [Options.CodeFont] is empty.
const DefaultCodeFont = "Courier New"

// Options controls how blocks map onto document styles.
// The zero value uses the defaults.
type Options struct {
	// MaxHeadingLevel is the deepest heading style in the document.
	// Deeper headings are given this level's style.
	// It must be between 1 and 6 if set.
	MaxHeadingLevel int
	// CodeFont is the fixed-width font for code blocks and code spans.
	CodeFont string
}

func (opts *Options) maxHeadingLevel() int {
	if opts == nil || opts.MaxHeadingLevel <= 0 {
		return DefaultMaxHeadingLevel
	}
	if opts.MaxHeadingLevel > 6 {
		return 6
	}
	return opts.MaxHeadingLevel
}

func (opts *Options) codeFont() string {
	if opts == nil || opts.CodeFont == "" {
		return DefaultCodeFont
	}
	return opts.CodeFont
}

// A Document is an ordered list of paragraphs and tables.
type Document struct {
	Body []Element
}

// Element is either a [*Paragraph] or a [*Table].
type Element interface {
	element()
}

// Paragraph style names.
const (
	NormalStyle     = ""
	ListBulletStyle = "ListBullet"
)

// HeadingStyle returns the paragraph style for a heading level.
func HeadingStyle(level int) string {
	return "Heading" + strconv.Itoa(level)
}

// Paragraph is a styled sequence of runs.
type Paragraph struct {
	Style string
	Runs  []Run
}

// Run is text with uniform formatting.
// A newline in a run starts a new paragraph with the same style.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	// Font is empty for the document's default font.
	Font string
}

// Table is a grid of plain-text cells.
// Every row has the same number of cells.
type Table struct {
	Rows [][]string
}

func (*Paragraph) element() {}
func (*Table) element()     {}

// Build converts blocks into a document.
// It returns [ErrEmpty] if blocks is empty.
// opts may be nil to use the defaults.
func Build(blocks []*textblocks.Block, opts *Options) (*Document, error) {
	if len(blocks) == 0 {
		return nil, ErrEmpty
	}
	doc := new(Document)
	for _, b := range blocks {
		switch b.Kind() {
		case textblocks.HeadingKind:
			level := b.HeadingLevel()
			if max := opts.maxHeadingLevel(); level > max {
				level = max
			}
			doc.Body = append(doc.Body, &Paragraph{
				Style: HeadingStyle(level),
				Runs:  []Run{{Text: b.Text()}},
			})
		case textblocks.CodeBlockKind:
			doc.Body = append(doc.Body, &Paragraph{
				Runs: []Run{{Text: b.Code(), Font: opts.codeFont()}},
			})
		case textblocks.TableKind:
			doc.Body = append(doc.Body, buildTable(b.Rows()))
		case textblocks.ListKind:
			for _, item := range b.Items() {
				doc.Body = append(doc.Body, &Paragraph{
					Style: ListBulletStyle,
					Runs:  inlineRuns(item, opts),
				})
			}
		case textblocks.ParagraphKind:
			doc.Body = append(doc.Body, &Paragraph{
				Runs: inlineRuns(b.Text(), opts),
			})
		}
	}
	return doc, nil
}

// buildTable pads or truncates every row
// to the header row's column count.
func buildTable(rows [][]string) *Table {
	t := &Table{Rows: make([][]string, len(rows))}
	if len(rows) == 0 {
		return t
	}
	columns := len(rows[0])
	for i, row := range rows {
		cells := make([]string, columns)
		copy(cells, row)
		t.Rows[i] = cells
	}
	return t
}

func inlineRuns(text string, opts *Options) []Run {
	spans := textblocks.SplitInline(text)
	runs := make([]Run, 0, len(spans))
	for _, span := range spans {
		r := Run{Text: span.Text}
		switch span.Kind {
		case textblocks.BoldRun:
			r.Bold = true
		case textblocks.ItalicRun:
			r.Italic = true
		case textblocks.CodeRun:
			r.Font = opts.codeFont()
		}
		runs = append(runs, r)
	}
	return runs
}
