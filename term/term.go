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

// Package term renders blocks for display in a terminal.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"zombiezen.com/go/textblocks"
)

// DefaultWidth is the line width used when [Renderer.Width] is zero.
const DefaultWidth = 80

// DefaultTheme is the syntax highlighting style
// used when [Renderer.Theme] is empty.
const DefaultTheme = "github"

// A Renderer writes blocks as styled terminal text.
// The zero value renders 80 columns wide without syntax highlighting.
type Renderer struct {
	// Width is the maximum line width in cells.
	// Paragraphs are wrapped and tables are narrowed to fit.
	Width int
	// Theme is the name of a chroma style for code blocks.
	Theme string
	// If Highlight is true, code blocks whose language is recognized
	// are syntax highlighted.
	Highlight bool
}

var (
	headingStyles = [...]lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#83a598")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#83a598")),
		lipgloss.NewStyle().Bold(true),
	}
	boldStyle   = lipgloss.NewStyle().Bold(true)
	italicStyle = lipgloss.NewStyle().Italic(true)
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b8bb26"))
)

const (
	bullet     = "•"
	codeIndent = "  "
)

func headingStyle(level int) lipgloss.Style {
	if level > len(headingStyles) {
		level = len(headingStyles)
	}
	return headingStyles[level-1]
}

// Render writes the given blocks to w.
// Blocks are separated by a blank line.
func (r *Renderer) Render(w io.Writer, blocks []*textblocks.Block) error {
	ww := &errWriter{w: w}
	for i, b := range blocks {
		if i > 0 {
			ww.WriteString("\n")
		}
		r.block(ww, b)
	}
	if ww.err != nil {
		return fmt.Errorf("render blocks to terminal: %w", ww.err)
	}
	return nil
}

func (r *Renderer) width() int {
	if r.Width <= 0 {
		return DefaultWidth
	}
	return r.Width
}

func (r *Renderer) theme() string {
	if r.Theme == "" {
		return DefaultTheme
	}
	return r.Theme
}

func (r *Renderer) block(w *errWriter, b *textblocks.Block) {
	switch b.Kind() {
	case textblocks.HeadingKind:
		var text strings.Builder
		for _, run := range b.Runs() {
			text.WriteString(run.Text)
		}
		w.WriteString(r.wrap(headingStyle(b.HeadingLevel()).Render(text.String()), text.String()))
		w.WriteString("\n")
	case textblocks.CodeBlockKind:
		w.WriteString(mutedStyle.Render(b.Language()))
		w.WriteString("\n")
		code := b.Code()
		if r.Highlight {
			code = highlight(code, b.Language(), r.theme())
		}
		for _, line := range strings.Split(code, "\n") {
			w.WriteString(codeIndent)
			w.WriteString(line)
			w.WriteString("\n")
		}
	case textblocks.TableKind:
		for _, line := range layoutTable(b.Rows(), r.width()) {
			w.WriteString(line)
			w.WriteString("\n")
		}
	case textblocks.ListKind:
		for _, item := range b.Items() {
			w.WriteString(bulletStyle.Render(bullet))
			w.WriteString(" ")
			w.WriteString(inline(item))
			w.WriteString("\n")
		}
	case textblocks.ParagraphKind:
		w.WriteString(r.wrap(inline(b.Text()), b.Text()))
		w.WriteString("\n")
	}
}

// wrap word-wraps styled text if its plain form is wider than the renderer.
func (r *Renderer) wrap(styled, plain string) string {
	if runewidth.StringWidth(plain) <= r.width() {
		return styled
	}
	return lipgloss.NewStyle().Width(r.width()).Render(styled)
}

// inline styles the bold, italic, and code runs of text.
func inline(text string) string {
	var sb strings.Builder
	for _, run := range textblocks.SplitInline(text) {
		switch run.Kind {
		case textblocks.BoldRun:
			sb.WriteString(boldStyle.Render(run.Text))
		case textblocks.ItalicRun:
			sb.WriteString(italicStyle.Render(run.Text))
		case textblocks.CodeRun:
			sb.WriteString(codeStyle.Render(run.Text))
		default:
			sb.WriteString(run.Text)
		}
	}
	return sb.String()
}

const (
	columnSeparator = " │ "
	ruleSeparator   = "─┼─"
	rule            = "─"
	ellipsis        = "…"
)

// layoutTable pads every row to the header's column count
// and every cell to its column's display width.
// Columns are narrowed evenly if the table is wider than width.
func layoutTable(rows [][]string, width int) []string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	columns := len(rows[0])
	widths := make([]int, columns)
	for _, row := range rows {
		for c := 0; c < columns && c < len(row); c++ {
			widths[c] = max(widths[c], runewidth.StringWidth(row[c]))
		}
	}
	total := runewidth.StringWidth(columnSeparator) * (columns - 1)
	for _, cw := range widths {
		total += cw
	}
	if total > width {
		limit := max((width-runewidth.StringWidth(columnSeparator)*(columns-1))/columns, 1)
		for c := range widths {
			widths[c] = min(widths[c], limit)
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		cells := make([]string, columns)
		for c := range cells {
			var cell string
			if c < len(row) {
				cell = runewidth.Truncate(row[c], widths[c], ellipsis)
			}
			cells[c] = runewidth.FillRight(cell, widths[c])
			if i == 0 {
				cells[c] = boldStyle.Render(cells[c])
			}
		}
		lines = append(lines, strings.Join(cells, columnSeparator))
		if i == 0 {
			rules := make([]string, columns)
			for c, cw := range widths {
				rules[c] = strings.Repeat(rule, cw)
			}
			lines = append(lines, mutedStyle.Render(strings.Join(rules, ruleSeparator)))
		}
	}
	return lines
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
