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

// Package samples provides example documents and scanner test cases.
package samples

import (
	_ "embed"
	"encoding/json"
)

// Example is a single scanner test case.
type Example struct {
	Name string
	// Mode is "plain" or "markdown".
	Mode   string
	Source string
	Blocks []Block
}

// Block is the JSON form of a block, without its source lines.
type Block struct {
	Type     string     `json:"type"`
	Content  string     `json:"content"`
	Level    int        `json:"level,omitempty"`
	Language string     `json:"language,omitempty"`
	Rows     [][]string `json:"rows,omitempty"`
	Items    []string   `json:"items,omitempty"`
}

//go:embed examples.json
var examplesData []byte

// Load returns the scanner test cases.
func Load() ([]Example, error) {
	var examples []Example
	if err := json.Unmarshal(examplesData, &examples); err != nil {
		return nil, err
	}
	return examples, nil
}

//go:embed notes.txt
var notes []byte

// Notes returns a plain-text study guide with implicit structure.
func Notes() []byte {
	return append([]byte(nil), notes...)
}

//go:embed tour.md
var tour []byte

// Tour returns a Markdown document that uses every block kind.
func Tour() []byte {
	return append([]byte(nil), tour...)
}
