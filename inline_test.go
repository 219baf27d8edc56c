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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitInline(t *testing.T) {
	tests := []struct {
		text string
		want []Run
	}{
		{text: "", want: nil},
		{text: "plain", want: []Run{{PlainRun, "plain"}}},
		{
			text: "a **b** c",
			want: []Run{{PlainRun, "a "}, {BoldRun, "b"}, {PlainRun, " c"}},
		},
		{
			text: "*x* and `y`",
			want: []Run{{ItalicRun, "x"}, {PlainRun, " and "}, {CodeRun, "y"}},
		},
		{
			text: "**bold***it*",
			want: []Run{{BoldRun, "bold"}, {ItalicRun, "it"}},
		},
		{
			text: "`**not bold**`",
			want: []Run{{CodeRun, "**not bold**"}},
		},
		{
			text: "**a *b* c**",
			want: []Run{{BoldRun, "a *b* c"}},
		},
		{
			text: "empty ** and `` spans",
			want: []Run{
				{PlainRun, "empty "},
				{ItalicRun, ""},
				{PlainRun, " and "},
				{CodeRun, ""},
				{PlainRun, " spans"},
			},
		},
		{
			text: "****",
			want: []Run{{BoldRun, ""}},
		},
		{
			text: "unclosed **bold",
			want: []Run{{PlainRun, "unclosed "}, {ItalicRun, ""}, {PlainRun, "bold"}},
		},
		{
			text: "2 * 3 = 6",
			want: []Run{{PlainRun, "2 * 3 = 6"}},
		},
	}
	for _, test := range tests {
		got := SplitInline(test.text)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("SplitInline(%q) (-want +got):\n%s", test.text, diff)
		}
	}
}

func TestRunKindString(t *testing.T) {
	tests := []struct {
		kind RunKind
		want string
	}{
		{PlainRun, "plain"},
		{BoldRun, "bold"},
		{ItalicRun, "italic"},
		{CodeRun, "code"},
		{RunKind(42), "RunKind(42)"},
	}
	for _, test := range tests {
		if got := test.kind.String(); got != test.want {
			t.Errorf("RunKind(%d).String() = %q; want %q", uint8(test.kind), got, test.want)
		}
	}
}
