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

package normhtml

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		b    string
		want string
	}{
		{"<p>a  \t b</p>", "<p>a b</p>"},
		{"<p>a  \t\nb</p>", "<p>a b</p>"},
		{" <p>a  b</p>", "<p>a b</p>"},
		{"<p>a  b</p> ", "<p>a b</p>"},
		{"<h1>x</h1>\n<p>y</p>", "<h1>x</h1><p>y</p>"},
		{"<pre><code>a  \n  b</code></pre>", "<pre><code>a  \n  b</code></pre>"},
		{"<table>\n<tr>\n<td> 1 </td>\n</tr>\n</table>", "<table><tr><td>1</td></tr></table>"},
		{"<em>a  b</em> ", "<em>a b</em> "},
		{"<br />", "<br>"},
		{`<code title="bar" CLASS="foo">x</code>`, `<code class="foo" title="bar">x</code>`},
		{"&#39;&amp;&gt;&lt;&quot;", "&apos;&amp;&gt;&lt;&quot;"},
	}
	for _, test := range tests {
		if got := Normalize([]byte(test.b)); string(got) != test.want {
			t.Errorf("Normalize(%q) = %q; want %q", test.b, got, test.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal([]byte("<ul>\n<li>a</li>\n</ul>"), []byte("<ul><li>a</li></ul>")) {
		t.Error("Equal(...) = false for lists differing in whitespace")
	}
	if Equal([]byte("<p>a</p>"), []byte("<p>b</p>")) {
		t.Error("Equal(...) = true for different text")
	}
}
