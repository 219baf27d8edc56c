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

package term

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// highlight colors code with the chroma lexer for language.
// Code in an unrecognized language is returned unchanged.
// Escape sequences never span a newline.
func highlight(code, language, theme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	style := styles.Get(theme)

	var sb strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		sgr := sgrCodes(style.Get(token.Type))
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				sb.WriteString("\n")
			}
			if part == "" {
				continue
			}
			if sgr == "" {
				sb.WriteString(part)
			} else {
				fmt.Fprintf(&sb, "\x1b[%sm%s\x1b[0m", sgr, part)
			}
		}
	}
	out := sb.String()
	if !strings.HasSuffix(code, "\n") {
		// Lexers may add a final newline.
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}

// sgrCodes returns the foreground-only SGR parameters for a style entry.
func sgrCodes(entry chroma.StyleEntry) string {
	var codes []string
	if entry.Colour.IsSet() {
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
	}
	if entry.Bold == chroma.Yes {
		codes = append(codes, "1")
	}
	if entry.Italic == chroma.Yes {
		codes = append(codes, "3")
	}
	if entry.Underline == chroma.Yes {
		codes = append(codes, "4")
	}
	return strings.Join(codes, ";")
}

// pageRenderers caches glamour renderers by word-wrap width.
var pageRenderers sync.Map // map[int]*glamour.TermRenderer

// RenderMarkdown renders Markdown source as a styled terminal page
// wrapped at width cells.
func RenderMarkdown(markdown string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	var tr *glamour.TermRenderer
	if cached, ok := pageRenderers.Load(width); ok {
		tr = cached.(*glamour.TermRenderer)
	} else {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		pageRenderers.Store(width, tr)
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
