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
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestNilBlock(t *testing.T) {
	var b *Block
	if got := b.Kind(); got != 0 {
		t.Errorf("Kind() = %v; want 0", got)
	}
	if got := b.Text(); got != "" {
		t.Errorf("Text() = %q; want \"\"", got)
	}
	if got := b.Rows(); got != nil {
		t.Errorf("Rows() = %q; want nil", got)
	}
	if got := b.Lines(); got != (LineSpan{}) {
		t.Errorf("Lines() = %v; want empty", got)
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "null" {
		t.Errorf("json.Marshal(nil block) = %s; want null", got)
	}
}

func TestBlockAccessors(t *testing.T) {
	h := NewHeading(9, "Title")
	if got := h.HeadingLevel(); got != 6 {
		t.Errorf("NewHeading(9, ...).HeadingLevel() = %d; want 6", got)
	}
	if got := NewHeading(0, "x").HeadingLevel(); got != 1 {
		t.Errorf("NewHeading(0, ...).HeadingLevel() = %d; want 1", got)
	}
	if got := h.Code(); got != "" {
		t.Errorf("heading Code() = %q; want \"\"", got)
	}

	c := NewCodeBlock("", "x")
	if got := c.Language(); got != "text" {
		t.Errorf("NewCodeBlock(\"\", ...).Language() = %q; want \"text\"", got)
	}
	if got := c.Text(); got != "" {
		t.Errorf("code Text() = %q; want \"\"", got)
	}

	rows := [][]string{{"a", "b"}, {"1", "2"}}
	tbl := NewTable(rows)
	rows[0][0] = "changed"
	tbl.Rows()[1][1] = "changed"
	if diff := cmp.Diff([][]string{{"a", "b"}, {"1", "2"}}, tbl.Rows()); diff != "" {
		t.Errorf("table rows mutated (-want +got):\n%s", diff)
	}
	if got := tbl.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d; want 2", got)
	}

	list := NewList([]string{"x"})
	list.Items()[0] = "changed"
	if diff := cmp.Diff([]string{"x"}, list.Items()); diff != "" {
		t.Errorf("list items mutated (-want +got):\n%s", diff)
	}

	p := NewParagraph("a **b**")
	want := []Run{{Kind: PlainRun, Text: "a "}, {Kind: BoldRun, Text: "b"}}
	if diff := cmp.Diff(want, p.Runs()); diff != "" {
		t.Errorf("Runs() (-want +got):\n%s", diff)
	}
	if got := list.Runs(); got != nil {
		t.Errorf("list Runs() = %v; want nil", got)
	}
}

func TestBlockKindString(t *testing.T) {
	tests := []struct {
		kind BlockKind
		want string
	}{
		{HeadingKind, "heading"},
		{CodeBlockKind, "code"},
		{TableKind, "table"},
		{ListKind, "list"},
		{ParagraphKind, "text"},
		{0, "BlockKind(0)"},
	}
	for _, test := range tests {
		if got := test.kind.String(); got != test.want {
			t.Errorf("BlockKind(%d).String() = %q; want %q", uint16(test.kind), got, test.want)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	blocks := Parse([]byte("## Title\n```go\nx\n```\n| a |\n- b\ntext\n"), MarkdownMode)
	got, err := json.Marshal(blocks)
	if err != nil {
		t.Fatal(err)
	}
	const want = `[` +
		`{"type":"heading","content":"Title","level":2,"lines":[0,1]},` +
		`{"type":"code","content":"x","language":"go","lines":[1,4]},` +
		`{"type":"table","content":"","rows":[["a"]],"lines":[4,5]},` +
		`{"type":"list","content":"","items":["b"],"lines":[5,6]},` +
		`{"type":"text","content":"text","lines":[6,7]}` +
		`]`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("json.Marshal(...) (-want +got):\n%s", diff)
	}
}

func TestMarshalYAML(t *testing.T) {
	blocks := Parse([]byte("# Title\n- a\n- b\n"), MarkdownMode)
	data, err := yaml.Marshal(blocks)
	if err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("%v\n%s", err, data)
	}
	want := []map[string]any{
		{"type": "heading", "content": "Title", "level": 1, "lines": []any{0, 1}},
		{"type": "list", "content": "", "items": []any{"a", "b"}, "lines": []any{1, 3}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("yaml.Marshal(...) round trip (-want +got):\n%s", diff)
	}
}
