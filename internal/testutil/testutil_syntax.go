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

package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// Diagnostic is implemented by the error and warning types of every
// package in this module.
type Diagnostic interface {
	Code() uint32
	Message() string
	Span() syntax.Span
}

// At renders the start of span as "line:col".
func At(src []byte, span syntax.Span) string {
	pos := syntax.NewSourceMap(src).Position(span.Start())
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// FormatDiagnostic renders a diagnostic in the form used by golden files:
// "E3040 7:5: Value not set for `a`.". The prefix is "E" or "W".
func FormatDiagnostic(prefix string, src []byte, diag Diagnostic) string {
	return fmt.Sprintf("%s%d %s: %s", prefix, diag.Code(), At(src, diag.Span()), diag.Message())
}

// SpanText returns the source text covered by span.
func SpanText(src []byte, span syntax.Span) string {
	end := min(span.End(), uint32(len(src)))
	start := min(span.Start(), end)
	return string(src[start:end])
}

// Lex lexes src or fails the test.
func Lex(t *testing.T, src string) syntax.TokenStream {
	t.Helper()
	stream, err := syntax.Lex([]byte(src))
	AssertNoError(t, err)
	return stream
}

// ParseItem parses a single item or fails the test.
func ParseItem(t *testing.T, src string) *syntax.Item {
	t.Helper()
	item, err := syntax.NewParseOptions().ParseItem([]byte(src))
	AssertNoError(t, err)
	return item
}

// TrimLines removes leading and trailing blank lines and the common
// indentation of the remaining lines.
func TrimLines(text string) string {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for ii, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[ii] = line[indent:]
		}
	}
	return strings.Join(lines, "\n")
}
