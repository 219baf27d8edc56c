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

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

// TableStyle is the table style applied to every exported table.
const TableStyle = "TableGrid"

// WriteDOCX writes the document to w as a WordprocessingML package
// based on the default godocx template,
// which defines the heading, list, and table styles [Build] refers to.
// A run that contains newlines continues in a new paragraph
// with the same style after each newline.
func (doc *Document) WriteDOCX(w io.Writer) error {
	rd, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	for _, elem := range doc.Body {
		switch elem := elem.(type) {
		case *Paragraph:
			addParagraph(rd, elem)
		case *Table:
			addTable(rd, elem)
		default:
			return fmt.Errorf("write docx: unknown element %T", elem)
		}
	}
	if err := rd.Write(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func addParagraph(rd *docx.RootDoc, p *Paragraph) {
	newPara := func() *docx.Paragraph {
		para := rd.AddEmptyParagraph()
		if p.Style != NormalStyle {
			para.Style(p.Style)
		}
		return para
	}
	para := newPara()
	for _, r := range p.Runs {
		for i, line := range strings.Split(r.Text, "\n") {
			if i > 0 {
				para = newPara()
			}
			if line == "" {
				continue
			}
			run := para.AddText(line)
			if r.Bold {
				run.Bold(true)
			}
			if r.Italic {
				run.Italic(true)
			}
			if r.Font != "" {
				run.Font(r.Font)
			}
		}
	}
}

func addTable(rd *docx.RootDoc, t *Table) {
	tbl := rd.AddTable()
	tbl.Style(TableStyle)
	for _, row := range t.Rows {
		tr := tbl.AddRow()
		for _, cell := range row {
			tr.AddCell().AddParagraph(cell)
		}
	}
}
