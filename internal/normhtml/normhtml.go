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

// Package normhtml normalizes HTML fragments so that tests can compare
// rendered blocks without caring about insignificant whitespace,
// attribute order, or entity spelling.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// Normalize returns a canonical form of an HTML fragment.
// Runs of whitespace outside <pre> collapse to one space,
// whitespace around block elements is dropped,
// attributes are sorted by name,
// and text is re-escaped with a fixed set of entities.
func Normalize(b []byte) []byte {
	n := &normalizer{last: html.StartTagToken}
	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return n.output
		case html.TextToken:
			n.text(tok.Text())
		case html.EndTagToken:
			name, _ := tok.TagName()
			n.endTag(string(name))
		case html.StartTagToken, html.SelfClosingTagToken:
			n.startTag(tok)
		case html.CommentToken:
			n.output = append(n.output, tok.Raw()...)
		}
		n.last = tt
		if tt == html.SelfClosingTagToken {
			n.last = html.EndTagToken
		}
	}
}

// Equal reports whether two HTML fragments have the same normal form.
func Equal(a, b []byte) bool {
	return bytes.Equal(Normalize(a), Normalize(b))
}

type normalizer struct {
	output  []byte
	last    html.TokenType
	lastTag string
	inPre   bool
}

func (n *normalizer) text(data []byte) {
	afterTag := n.last == html.EndTagToken || n.last == html.StartTagToken
	if afterTag && n.lastTag == "br" {
		data = bytes.TrimLeft(data, "\n")
	}
	if !n.inPre {
		data = whitespaceRE.ReplaceAll(data, []byte(" "))
		if afterTag && isBlockTag(n.lastTag) {
			if n.last == html.StartTagToken {
				data = bytes.TrimLeftFunc(data, unicode.IsSpace)
			} else {
				data = bytes.TrimSpace(data)
			}
		}
	}
	n.output = append(n.output, textEscaper.Replace(bytes.Clone(data))...)
}

func (n *normalizer) endTag(tag string) {
	if tag == "pre" {
		n.inPre = false
	} else if isBlockTag(tag) {
		n.output = bytes.TrimRightFunc(n.output, unicode.IsSpace)
	}
	n.output = append(n.output, "</"...)
	n.output = append(n.output, tag...)
	n.output = append(n.output, '>')
	n.lastTag = tag
}

type attribute struct {
	key   string
	value string
}

func (n *normalizer) startTag(tok *html.Tokenizer) {
	name, hasAttr := tok.TagName()
	tag := string(name)
	if tag == "pre" {
		n.inPre = true
	}
	if isBlockTag(tag) {
		n.output = bytes.TrimRightFunc(n.output, unicode.IsSpace)
	}
	n.output = append(n.output, '<')
	n.output = append(n.output, tag...)
	var attrs []attribute
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = tok.TagAttr()
		attrs = append(attrs, attribute{string(k), string(v)})
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].key < attrs[j].key
	})
	for _, attr := range attrs {
		n.output = append(n.output, ' ')
		n.output = append(n.output, attr.key...)
		if attr.value != "" {
			n.output = append(n.output, `="`...)
			n.output = append(n.output, html.EscapeString(attr.value)...)
			n.output = append(n.output, '"')
		}
	}
	n.output = append(n.output, '>')
	n.lastTag = tag
}

// blockTags are the elements around which whitespace is insignificant.
var blockTags = make(map[string]struct{})

func init() {
	for _, a := range []atom.Atom{
		atom.Blockquote, atom.Body, atom.Div, atom.Hr, atom.P, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ol, atom.Ul, atom.Li, atom.Dl, atom.Dt, atom.Dd,
		atom.Table, atom.Caption, atom.Colgroup, atom.Col,
		atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr, atom.Th, atom.Td,
		atom.Section, atom.Article, atom.Header, atom.Footer, atom.Figure,
	} {
		blockTags[a.String()] = struct{}{}
	}
}

func isBlockTag(tag string) bool {
	_, ok := blockTags[tag]
	return ok
}
