// Copyright (c) 2024 The custom-attrs Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package codegen

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// WriteDiagnostic renders diag with a snippet of the source line it points
// at:
//
//	enum.rs:7:5: E3040: Value not set for `a`.
//	   7 |     B,
//	     |     ^
func WriteDiagnostic(w io.Writer, src Source, diag *Diagnostic) error {
	var b strings.Builder
	if diag.Code == 0 {
		fmt.Fprintf(&b, "%s: %s\n", src.Path, diag.Message)
	} else {
		m := syntax.NewSourceMap(src.Content)
		pos := m.Position(diag.Span.Start())
		fmt.Fprintf(&b, "%s:%d:%d: %s\n", src.Path, pos.Line, pos.Column, diag)
		writeSnippet(&b, m, diag.Span)
		for _, note := range diag.Notes {
			pos := m.Position(note.Span.Start())
			fmt.Fprintf(&b, "%s:%d:%d: note: %s\n", src.Path, pos.Line, pos.Column, note.Message)
			writeSnippet(&b, m, note.Span)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteReport writes the diagnostics of out, warnings first.
func WriteReport(w io.Writer, out *Output) error {
	for _, diag := range out.Warnings {
		if err := WriteDiagnostic(w, out.Source, diag); err != nil {
			return err
		}
	}
	for _, diag := range out.Errors {
		if err := WriteDiagnostic(w, out.Source, diag); err != nil {
			return err
		}
	}
	return nil
}

func writeSnippet(b *strings.Builder, m *syntax.SourceMap, span syntax.Span) {
	start := m.Position(span.Start())
	text := m.LineText(start.Line)

	width := 1
	if span.Len() > 0 {
		end := m.Position(span.End())
		if end.Line == start.Line {
			width = max(end.Column-start.Column, 1)
		} else {
			width = max(utf8.RuneCountInString(text)-start.Column+1, 1)
		}
	}

	// Tabs are kept so the caret lines up with the source.
	var pad strings.Builder
	col := 1
	for _, r := range text {
		if col >= start.Column {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
		col += 1
	}

	fmt.Fprintf(b, "%4d | %s\n", start.Line, text)
	fmt.Fprintf(b, "     | %s%s\n", pad.String(), strings.Repeat("^", width))
}
