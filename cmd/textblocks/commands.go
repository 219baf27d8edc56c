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

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/textblocks"
	"zombiezen.com/go/textblocks/export"
	"zombiezen.com/go/textblocks/format"
	"zombiezen.com/go/textblocks/term"
)

// app is the state shared by all subcommands.
type app struct {
	v          *viper.Viper
	configFile string
	verbose    bool

	cfg    *config
	mode   textblocks.Mode
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "textblocks",
		Short: "Split notes into headings, code, tables, lists, and paragraphs",
		Long: "textblocks segments Markdown or loosely formatted plain-text notes\n" +
			"into an ordered sequence of typed blocks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: textblocks.yaml in . or the user config directory)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")
	flags.StringP("mode", "m", "plain", "input mode: plain or markdown")
	flags.Bool("honor-markdown", true, "in plain mode, recognize explicit Markdown first")
	a.bind(root, "mode", "mode")
	a.bind(root, "plain.honor_markdown", "honor-markdown")

	root.AddCommand(
		a.newParseCommand(),
		a.newRenderCommand(),
		a.newExportCommand(),
	)
	return root
}

// bind connects a configuration key to a persistent flag of cmd.
func (a *app) bind(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	cfg, err := loadConfig(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.mode, err = textblocks.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config", "path", used)
	}
	return nil
}

// scan reads the input named by args and segments it.
func (a *app) scan(cmd *cobra.Command, args []string) (source []byte, blocks []*textblocks.Block, err error) {
	source, err = readInput(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	lines := textblocks.SplitLines(source)
	var s textblocks.Scanner
	switch a.mode {
	case textblocks.MarkdownMode:
		s = &textblocks.MarkdownScanner{Diagnostics: a.diagnose}
	default:
		s = &textblocks.PlainScanner{
			HonorMarkdown: a.cfg.Plain.HonorMarkdown,
			Diagnostics:   a.diagnose,
		}
	}
	blocks = s.Scan(lines)
	a.logger.Debug("scanned input", "mode", a.mode, "lines", len(lines), "blocks", len(blocks))
	return source, blocks, nil
}

func (a *app) diagnose(d textblocks.Diagnostic) {
	a.logger.Warn(d.Message, "line", d.Line+1, "kind", d.Kind)
}

// readInput reads the file named by args[0],
// or standard input if there are no arguments or the argument is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	return os.ReadFile(args[0])
}

func (a *app) newParseCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Print the blocks of a document as JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, blocks, err := a.scan(cmd, args)
			if err != nil {
				return err
			}
			if blocks == nil {
				blocks = []*textblocks.Block{}
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(output) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(blocks)
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(blocks); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func (a *app) newRenderCommand() *cobra.Command {
	var outputFormat string
	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Render the blocks of a document",
		Long: "render writes the blocks of a document as HTML, normalized Markdown,\n" +
			"styled terminal text (term), or a glamour-rendered page (page).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, blocks, err := a.scan(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(outputFormat) {
			case "html":
				if err := textblocks.RenderHTML(out, blocks); err != nil {
					return err
				}
				if len(blocks) > 0 {
					_, err = io.WriteString(out, "\n")
				}
				return err
			case "markdown", "md":
				return format.Format(out, blocks)
			case "term":
				r := &term.Renderer{
					Width:     a.cfg.Render.Width,
					Theme:     a.cfg.Render.Theme,
					Highlight: a.cfg.Render.Highlight,
				}
				return r.Render(out, blocks)
			case "page":
				markdown := string(source)
				if a.mode != textblocks.MarkdownMode {
					buf := new(bytes.Buffer)
					if err := format.Format(buf, blocks); err != nil {
						return err
					}
					markdown = buf.String()
				}
				page, err := term.RenderMarkdown(markdown, a.cfg.Render.Width)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, page)
				return err
			default:
				return fmt.Errorf("unknown render format %q", outputFormat)
			}
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&outputFormat, "format", "f", "term", "output format: html, markdown, term, or page")
	flags.Int("width", term.DefaultWidth, "terminal width in cells")
	flags.String("theme", term.DefaultTheme, "syntax highlighting style")
	flags.Bool("highlight", true, "syntax highlight code blocks")
	a.bind(cmd, "render.width", "width")
	a.bind(cmd, "render.theme", "theme")
	a.bind(cmd, "render.highlight", "highlight")
	return cmd
}

func (a *app) newExportCommand() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export the blocks of a document as a Word (.docx) file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, blocks, err := a.scan(cmd, args)
			if err != nil {
				return err
			}
			doc, err := export.Build(blocks, &export.Options{
				MaxHeadingLevel: a.cfg.Export.MaxHeadingLevel,
				CodeFont:        a.cfg.Export.CodeFont,
			})
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				return doc.WriteDOCX(cmd.OutOrStdout())
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			err = doc.WriteDOCX(f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return errors.Join(err, os.Remove(outPath))
			}
			a.logger.Debug("exported document", "path", outPath, "elements", len(doc.Body))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&outPath, "output", "o", "", "output file (default: standard output)")
	flags.Int("max-heading-level", export.DefaultMaxHeadingLevel, "deepest heading style to emit")
	flags.String("code-font", export.DefaultCodeFont, "font for code blocks")
	a.bind(cmd, "export.max_heading_level", "max-heading-level")
	a.bind(cmd, "export.code_font", "code-font")
	return cmd
}
