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

// Package format writes a block sequence back out as Markdown
// that [textblocks.MarkdownScanner] scans into the same blocks.
package format

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"zombiezen.com/go/textblocks"
)

// Format writes the given blocks as Markdown to the given writer.
// Blocks are separated by a blank line.
func Format(w io.Writer, blocks []*textblocks.Block) error {
	ww := &errWriter{w: w}
	for _, b := range blocks {
		if ww.hasWritten {
			ww.WriteString("\n")
		}
		formatBlock(ww, b)
	}
	return ww.err
}

func formatBlock(w *errWriter, b *textblocks.Block) {
	switch b.Kind() {
	case textblocks.HeadingKind:
		w.WriteString(HeadingPrefix(b.HeadingLevel()))
		w.WriteString(b.Text())
		w.WriteString("\n")
	case textblocks.CodeBlockKind:
		w.WriteString("```")
		if lang := b.Language(); isFenceLanguage(lang) {
			w.WriteString(lang)
		}
		w.WriteString("\n")
		if code := b.Code(); code != "" {
			w.WriteString(code)
			w.WriteString("\n")
		}
		w.WriteString("```\n")
	case textblocks.TableKind:
		rows := b.Rows()
		if len(rows) == 0 {
			return
		}
		writeRow(w, rows[0])
		w.WriteString("|")
		for range rows[0] {
			w.WriteString("---|")
		}
		w.WriteString("\n")
		for _, row := range rows[1:] {
			writeRow(w, row)
		}
	case textblocks.ListKind:
		for _, item := range b.Items() {
			w.WriteString(listItemLine(item))
			w.WriteString("\n")
		}
	case textblocks.ParagraphKind:
		text := b.Text()
		if !scansAs(text, textblocks.NewParagraph(text)) {
			// Headings and fences are only recognized at column 0
			// and paragraphs are trimmed.
			w.WriteString(" ")
		}
		w.WriteString(text)
		w.WriteString("\n")
	}
}

// listItemLine returns a list line that scans back to item.
// The scanner strips at most one number marker after the bullet,
// so an item that starts with one needs a second marker.
func listItemLine(item string) string {
	line := "- " + item
	if scansAs(line, textblocks.NewList([]string{item})) {
		return line
	}
	return "- 1. " + item
}

// scansAs reports whether line by itself scans into a single block
// with the same content as want.
func scansAs(line string, want *textblocks.Block) bool {
	blocks := new(textblocks.MarkdownScanner).Scan([]string{line})
	if len(blocks) != 1 {
		return false
	}
	got := blocks[0]
	return got.Kind() == want.Kind() &&
		got.Text() == want.Text() &&
		slices.Equal(got.Items(), want.Items())
}

// isFenceLanguage reports whether lang can follow an opening fence
// and survive a rescan. "plaintext" is the default and is left implicit.
func isFenceLanguage(lang string) bool {
	if lang == "" || lang == "plaintext" {
		return false
	}
	for _, c := range lang {
		if !(c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

func writeRow(w *errWriter, cells []string) {
	w.WriteString("|")
	for _, cell := range cells {
		w.WriteString(" ")
		w.WriteString(escapeCell(cell))
		w.WriteString(" |")
	}
	w.WriteString("\n")
}

// escapeCell replaces pipes in a cell, which have no escape
// in the table syntax the scanner accepts.
func escapeCell(cell string) string {
	if cell == "" {
		return " "
	}
	return strings.ReplaceAll(cell, "|", "¦")
}

// HeadingPrefix returns the ATX marker for a heading level,
// for example "### " for level 3.
func HeadingPrefix(level int) string {
	if level < 1 || level > 6 {
		panic("heading level " + strconv.Itoa(level) + " out of range")
	}
	return strings.Repeat("#", level) + " "
}

type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}
