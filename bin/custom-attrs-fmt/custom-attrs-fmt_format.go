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

package main

import (
	"fmt"
	"strings"

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

const defaultIndent = "    "

type formatter struct {
	indent string

	src   []byte
	out   strings.Builder
	line  strings.Builder
	depth int

	// Depth of the current line, or -1 until its first token.
	lineDepth int
	opens     []open

	blank     bool
	afterOpen bool
	started   bool
}

type open struct {
	kind   syntax.TokenKind
	offset uint32
}

var closers = map[syntax.TokenKind]syntax.TokenKind{
	syntax.T_CLOSE_CURL:   syntax.T_OPEN_CURL,
	syntax.T_CLOSE_PAREN:  syntax.T_OPEN_PAREN,
	syntax.T_CLOSE_SQUARE: syntax.T_OPEN_SQUARE,
}

// format re-indents src by delimiter depth. Trailing whitespace is removed,
// runs of blank lines are collapsed, and blank lines next to an opening or
// closing delimiter are dropped.
func format(src []byte, indent string) ([]byte, error) {
	tokens, err := syntax.NewTokens(src)
	if err != nil {
		return nil, describe(src, err)
	}
	f := &formatter{
		indent:    indent,
		src:       src,
		lineDepth: -1,
	}
	var token syntax.Token
	for {
		offset := tokens.Offset()
		if err := tokens.Next(&token); err != nil {
			return nil, describe(src, err)
		}
		if token.Kind == syntax.T_EOF {
			break
		}
		if err := f.token(token.Kind, offset, src[offset:offset+token.Len]); err != nil {
			return nil, err
		}
	}
	if len(f.opens) > 0 {
		last := f.opens[len(f.opens)-1]
		return nil, f.errorAt(last.offset, "unclosed delimiter")
	}
	f.endLine()
	return []byte(f.out.String()), nil
}

func (f *formatter) token(kind syntax.TokenKind, offset uint32, text []byte) error {
	switch kind {
	case syntax.T_NEWLINE:
		f.endLine()
		return nil
	case syntax.T_SPACE:
		if f.lineDepth >= 0 {
			f.line.Write(text)
		}
		return nil
	case syntax.T_OPEN_CURL, syntax.T_OPEN_PAREN, syntax.T_OPEN_SQUARE:
		f.startLine(f.depth)
		f.opens = append(f.opens, open{kind, offset})
		f.depth += 1
	case syntax.T_CLOSE_CURL, syntax.T_CLOSE_PAREN, syntax.T_CLOSE_SQUARE:
		if len(f.opens) == 0 {
			return f.errorAt(offset, "unexpected closing delimiter")
		}
		last := f.opens[len(f.opens)-1]
		if last.kind != closers[kind] {
			return f.errorAt(offset, "mismatched closing delimiter")
		}
		f.opens = f.opens[:len(f.opens)-1]
		f.depth -= 1
		f.startLine(f.depth)
	default:
		f.startLine(f.depth)
	}
	f.line.Write(text)
	return nil
}

func (f *formatter) startLine(depth int) {
	if f.lineDepth < 0 {
		f.lineDepth = depth
	}
}

func (f *formatter) endLine() {
	text := strings.TrimRight(f.line.String(), " \t\v\f\r")
	f.line.Reset()
	depth := f.lineDepth
	f.lineDepth = -1

	if text == "" {
		f.blank = f.started && !f.afterOpen
		return
	}
	closes := strings.ContainsAny(text[:1], "})]")
	if f.blank && !closes {
		f.out.WriteByte('\n')
	}
	f.blank = false
	f.out.WriteString(strings.Repeat(f.indent, depth))
	f.out.WriteString(text)
	f.out.WriteByte('\n')
	f.started = true
	f.afterOpen = strings.ContainsAny(text[len(text)-1:], "{([")
}

func (f *formatter) errorAt(offset uint32, msg string) error {
	pos := syntax.NewSourceMap(f.src).Position(offset)
	return fmt.Errorf("%d:%d: %s", pos.Line, pos.Column, msg)
}

func describe(src []byte, err error) error {
	if serr, ok := err.(*syntax.Error); ok {
		pos := syntax.NewSourceMap(src).Position(serr.Span().Start())
		return fmt.Errorf("%d:%d: %v", pos.Line, pos.Column, serr)
	}
	return err
}
