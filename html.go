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
	"io"

	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
)

// An HTMLRenderer converts blocks into HTML.
// Blocks are rendered in sequence order, one element per block.
// A code block's language is only used as a class name.
type HTMLRenderer struct {
	// If NoInlineStyles is true, paragraph and heading text
	// is escaped verbatim instead of being split into
	// <strong>, <em>, and <code> runs.
	NoInlineStyles bool
	// CodeClassPrefix is prepended to a code block's language
	// to form the class of its <code> element.
	// If empty, "language-" is used.
	CodeClassPrefix string
}

// RenderHTML writes the given blocks to the given writer as HTML
// using the default options for [HTMLRenderer].
// It will return the first error encountered, if any.
func RenderHTML(w io.Writer, blocks []*Block) error {
	return new(HTMLRenderer).Render(w, blocks)
}

// Render writes the given blocks to the given writer as HTML.
// It will return the first error encountered, if any.
func (r *HTMLRenderer) Render(w io.Writer, blocks []*Block) error {
	var buf []byte
	for i, b := range blocks {
		buf = buf[:0]
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = r.AppendBlock(buf, b)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("render blocks to html: %w", err)
		}
	}
	return nil
}

// AppendBlock appends the rendered HTML of a block to dst
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendBlock(dst []byte, block *Block) []byte {
	state := &renderState{
		HTMLRenderer: r,
		dst:          dst,
	}
	state.block(block)
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	dst []byte
}

func (r *renderState) openTag(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

var headingTags = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (r *renderState) block(block *Block) {
	switch block.Kind() {
	case HeadingKind:
		tagName := headingTags[block.HeadingLevel()-1]
		r.openTag(tagName)
		r.text(block.Text())
		r.closeTag(tagName)
	case CodeBlockKind:
		r.openTag(atom.Pre)
		r.dst = append(r.dst, "<code"...)
		if lang := block.Language(); lang != "" {
			prefix := r.CodeClassPrefix
			if prefix == "" {
				prefix = "language-"
			}
			r.dst = append(r.dst, ` class="`...)
			r.dst = escapeHTML(r.dst, prefix+lang)
			r.dst = append(r.dst, '"')
		}
		r.dst = append(r.dst, '>')
		r.dst = escapeHTML(r.dst, block.Code())
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
	case TableKind:
		r.table(block)
	case ListKind:
		r.openTag(atom.Ul)
		for _, item := range block.Items() {
			r.openTag(atom.Li)
			r.text(item)
			r.closeTag(atom.Li)
		}
		r.closeTag(atom.Ul)
	case ParagraphKind:
		r.openTag(atom.P)
		r.text(block.Text())
		r.closeTag(atom.P)
	}
}

// table renders row 0 as the header
// and every row with the header's column count.
func (r *renderState) table(block *Block) {
	rows := block.Rows()
	if len(rows) == 0 {
		return
	}
	columns := len(rows[0])
	r.openTag(atom.Table)
	r.openTag(atom.Thead)
	r.row(atom.Th, rows[0], columns)
	r.closeTag(atom.Thead)
	if len(rows) > 1 {
		r.openTag(atom.Tbody)
		for _, row := range rows[1:] {
			r.row(atom.Td, row, columns)
		}
		r.closeTag(atom.Tbody)
	}
	r.closeTag(atom.Table)
}

func (r *renderState) row(cellTag atom.Atom, row []string, columns int) {
	r.openTag(atom.Tr)
	for i := 0; i < columns; i++ {
		r.openTag(cellTag)
		if i < len(row) {
			r.text(row[i])
		}
		r.closeTag(cellTag)
	}
	r.closeTag(atom.Tr)
}

func (r *renderState) text(s string) {
	if r.NoInlineStyles {
		r.dst = escapeHTML(r.dst, s)
		return
	}
	for _, run := range SplitInline(s) {
		r.run(run)
	}
}

var runTags = map[RunKind]atom.Atom{
	BoldRun:   atom.Strong,
	ItalicRun: atom.Em,
	CodeRun:   atom.Code,
}

func (r *renderState) run(run Run) {
	tagName, styled := runTags[run.Kind]
	if styled {
		r.openTag(tagName)
	}
	r.dst = escapeHTML(r.dst, run.Text)
	if styled {
		r.closeTag(tagName)
	}
}

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&#39;", // "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// escapeHTML appends the HTML-escaped version of a string to a byte slice.
func escapeHTML(dst []byte, src string) []byte {
	return append(dst, htmlEscaper.Replace([]byte(src))...)
}
