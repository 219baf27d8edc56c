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
	"encoding/json"
	"fmt"
	"strings"
)

// A Block is one classified unit of content:
// a heading, code block, table, list, or paragraph.
// Blocks are immutable once a scanner has emitted them.
// Accessors return copies of any slices they hold.
type Block struct {
	kind     BlockKind
	level    int
	text     string
	language string
	rows     [][]string
	items    []string
	lines    LineSpan
}

// Kind returns the type of block
// or zero if the block is nil.
func (b *Block) Kind() BlockKind {
	if b == nil {
		return 0
	}
	return b.kind
}

// HeadingLevel returns the 1-based level of a [HeadingKind] block
// or zero for other kinds of blocks.
func (b *Block) HeadingLevel() int {
	if b.Kind() != HeadingKind {
		return 0
	}
	return b.level
}

// Text returns the text of a [HeadingKind] or [ParagraphKind] block
// or the empty string for other kinds of blocks.
func (b *Block) Text() string {
	switch b.Kind() {
	case HeadingKind, ParagraphKind:
		return b.text
	default:
		return ""
	}
}

// Language returns the language label of a [CodeBlockKind] block.
// The label is for display only.
func (b *Block) Language() string {
	if b.Kind() != CodeBlockKind {
		return ""
	}
	return b.language
}

// Code returns the verbatim body of a [CodeBlockKind] block,
// its source lines joined with "\n".
func (b *Block) Code() string {
	if b.Kind() != CodeBlockKind {
		return ""
	}
	return b.text
}

// Rows returns a copy of the cells of a [TableKind] block.
// Row 0 is conventionally the header row.
func (b *Block) Rows() [][]string {
	if b.Kind() != TableKind {
		return nil
	}
	rows := make([][]string, len(b.rows))
	for i, row := range b.rows {
		rows[i] = append([]string(nil), row...)
	}
	return rows
}

// RowCount returns the number of rows in a [TableKind] block.
func (b *Block) RowCount() int {
	if b.Kind() != TableKind {
		return 0
	}
	return len(b.rows)
}

// Items returns a copy of the items of a [ListKind] block,
// already stripped of their markers.
func (b *Block) Items() []string {
	if b.Kind() != ListKind {
		return nil
	}
	return append([]string(nil), b.items...)
}

// Runs splits the text of a heading or paragraph into styled runs.
// It returns nil for other kinds of blocks.
func (b *Block) Runs() []Run {
	switch b.Kind() {
	case HeadingKind, ParagraphKind:
		return SplitInline(b.text)
	default:
		return nil
	}
}

// Lines returns the range of source lines the block was scanned from.
// Blocks built with the New functions have an empty span.
func (b *Block) Lines() LineSpan {
	if b == nil {
		return LineSpan{}
	}
	return b.lines
}

// String returns a short debugging description of the block.
func (b *Block) String() string {
	switch b.Kind() {
	case HeadingKind:
		return fmt.Sprintf("Heading(%d, %q)", b.level, b.text)
	case CodeBlockKind:
		return fmt.Sprintf("CodeBlock(%s, %d lines)", b.language, strings.Count(b.text, "\n")+1)
	case TableKind:
		return fmt.Sprintf("Table(%d rows)", len(b.rows))
	case ListKind:
		return fmt.Sprintf("List(%q)", b.items)
	case ParagraphKind:
		return fmt.Sprintf("Paragraph(%q)", b.text)
	default:
		return "<nil>"
	}
}

// NewHeading returns a heading block.
// Levels outside 1-6 are clamped.
func NewHeading(level int, text string) *Block {
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	return &Block{kind: HeadingKind, level: level, text: text}
}

// NewCodeBlock returns a code block.
// An empty language is recorded as "text".
func NewCodeBlock(language, code string) *Block {
	if language == "" {
		language = "text"
	}
	return &Block{kind: CodeBlockKind, language: language, text: code}
}

// NewTable returns a table block holding a copy of rows.
func NewTable(rows [][]string) *Block {
	b := &Block{kind: TableKind, rows: make([][]string, len(rows))}
	for i, row := range rows {
		b.rows[i] = append([]string(nil), row...)
	}
	return b
}

// NewList returns a list block holding a copy of items.
func NewList(items []string) *Block {
	return &Block{kind: ListKind, items: append([]string(nil), items...)}
}

// NewParagraph returns a paragraph block.
func NewParagraph(text string) *Block {
	return &Block{kind: ParagraphKind, text: text}
}

// withLines returns b after recording the source lines it consumed.
// Only scanners call it, before the block is emitted.
func (b *Block) withLines(start, end int) *Block {
	b.lines = LineSpan{Start: start, End: end}
	return b
}

// BlockKind is an enumeration of values returned by [*Block.Kind].
type BlockKind uint16

const (
	HeadingKind BlockKind = 1 + iota
	CodeBlockKind
	TableKind
	ListKind
	ParagraphKind
)

// String returns the kind's name as used in the "type" field of the JSON encoding.
func (kind BlockKind) String() string {
	switch kind {
	case HeadingKind:
		return "heading"
	case CodeBlockKind:
		return "code"
	case TableKind:
		return "table"
	case ListKind:
		return "list"
	case ParagraphKind:
		return "text"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint16(kind))
	}
}

// LineSpan is a half-open range of 0-based source line numbers.
type LineSpan struct {
	Start int
	End   int
}

// Len returns the number of lines in the span.
func (span LineSpan) Len() int {
	return span.End - span.Start
}

func (span LineSpan) String() string {
	return fmt.Sprintf("[%d,%d)", span.Start, span.End)
}

type jsonBlock struct {
	Type     string     `json:"type" yaml:"type"`
	Content  string     `json:"content" yaml:"content"`
	Level    int        `json:"level,omitempty" yaml:"level,omitempty"`
	Language string     `json:"language,omitempty" yaml:"language,omitempty"`
	Rows     [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
	Items    []string   `json:"items,omitempty" yaml:"items,omitempty"`
	Lines    *[2]int    `json:"lines,omitempty" yaml:"lines,omitempty,flow"`
}

func (b *Block) toJSON() jsonBlock {
	jb := jsonBlock{
		Type:     b.Kind().String(),
		Level:    b.HeadingLevel(),
		Language: b.Language(),
		Rows:     b.Rows(),
		Items:    b.Items(),
	}
	switch b.Kind() {
	case CodeBlockKind:
		jb.Content = b.Code()
	default:
		jb.Content = b.Text()
	}
	if b.lines.Len() > 0 {
		jb.Lines = &[2]int{b.lines.Start, b.lines.End}
	}
	return jb
}

// MarshalJSON encodes the block as an object
// with a "type" of "heading", "code", "table", "list", or "text".
func (b *Block) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	return json.Marshal(b.toJSON())
}

// MarshalYAML encodes the block with the same fields as [*Block.MarshalJSON].
func (b *Block) MarshalYAML() (any, error) {
	if b == nil {
		return nil, nil
	}
	return b.toJSON(), nil
}
