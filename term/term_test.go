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
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/textblocks"
)

var sgrRE = regexp.MustCompile("\x1b\\[[0-9;]*m")

// plain strips escape sequences and trailing spaces from terminal output.
func plain(s string) string {
	lines := strings.Split(sgrRE.ReplaceAllString(s, ""), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func TestRender(t *testing.T) {
	blocks := []*textblocks.Block{
		textblocks.NewHeading(1, "Title"),
		textblocks.NewParagraph("a **b** `c`"),
		textblocks.NewList([]string{"x", "*y*"}),
		textblocks.NewTable([][]string{
			{"Name", "Qty"},
			{"apple", "3"},
			{"kiwi"},
		}),
		textblocks.NewCodeBlock("go", "x := 1\ny := 2"),
	}
	want := "Title\n" +
		"\n" +
		"a b c\n" +
		"\n" +
		"• x\n" +
		"• y\n" +
		"\n" +
		"Name  │ Qty\n" +
		"──────┼────\n" +
		"apple │ 3\n" +
		"kiwi  │\n" +
		"\n" +
		"go\n" +
		"  x := 1\n" +
		"  y := 2\n"

	for _, highlight := range []bool{false, true} {
		r := &Renderer{Highlight: highlight, Theme: "monokai"}
		sb := new(strings.Builder)
		if err := r.Render(sb, blocks); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, plain(sb.String())); diff != "" {
			t.Errorf("Render(Highlight: %t) (-want +got):\n%s", highlight, diff)
		}
	}
}

func TestHighlight(t *testing.T) {
	const code = "func main() {\n\treturn\n}"
	got := highlight(code, "go", "monokai")
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("highlight(%q, \"go\", \"monokai\") = %q; want escape sequences", code, got)
	}
	if stripped := sgrRE.ReplaceAllString(got, ""); stripped != code {
		t.Errorf("highlight(...) text = %q; want %q", stripped, code)
	}
	for _, line := range strings.Split(got, "\n") {
		if strings.Count(line, "\x1b[") != 2*strings.Count(line, "\x1b[0m") {
			t.Errorf("line %q has an escape sequence that spans lines", line)
		}
	}

	if got := highlight(code, "no-such-language", "monokai"); got != code {
		t.Errorf("highlight(%q, \"no-such-language\", ...) = %q; want unchanged", code, got)
	}
}

func TestLayoutTable(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]string
		width int
		want  []string
	}{
		{
			name:  "Empty",
			rows:  nil,
			width: 80,
			want:  nil,
		},
		{
			name: "LongRowTruncated",
			rows: [][]string{
				{"a", "b"},
				{"1", "2", "3"},
			},
			width: 80,
			want: []string{
				"a │ b",
				"──┼──",
				"1 │ 2",
			},
		},
		{
			name: "WideCharacters",
			rows: [][]string{
				{"名前", "x"},
				{"a", "y"},
			},
			width: 80,
			want: []string{
				"名前 │ x",
				"─────┼──",
				"a    │ y",
			},
		},
		{
			name: "Narrowed",
			rows: [][]string{
				{"header", "other"},
				{"abcdefghij", "z"},
			},
			width: 13,
			want: []string{
				"head… │ other",
				"──────┼──────",
				"abcd… │ z",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got []string
			for _, line := range layoutTable(test.rows, test.width) {
				got = append(got, plain(line))
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("layoutTable(%q, %d) (-want +got):\n%s", test.rows, test.width, diff)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRenderError(t *testing.T) {
	r := new(Renderer)
	err := r.Render(failWriter{}, []*textblocks.Block{textblocks.NewParagraph("x")})
	if err == nil {
		t.Error("Render to failing writer did not return an error")
	}
}

func TestRenderMarkdown(t *testing.T) {
	got, err := RenderMarkdown("# Title\n\nSome *text*.\n", 40)
	if err != nil {
		t.Fatal(err)
	}
	got = plain(got)
	for _, want := range []string{"Title", "Some text."} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderMarkdown(...) = %q; want to contain %q", got, want)
		}
	}
}
