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

package syntax

import (
	"strings"
)

// Span is a byte range of the source file.
type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	start := min(s.start, other.start)
	end := max(s.End(), other.End())
	return Span{start, end - start}
}

// TokenTree is one of *Ident, *Punct, *Literal, or *Group.
type TokenTree interface {
	Span() Span
	isTokenTree()
}

type TokenStream []TokenTree

// Span covers every token of the stream. An empty stream has a zero span.
func (ts TokenStream) Span() Span {
	if len(ts) == 0 {
		return Span{}
	}
	return ts[0].Span().Join(ts[len(ts)-1].Span())
}

type Ident struct {
	name string
	span Span
}

func NewIdent(name string, span Span) *Ident {
	return &Ident{name, span}
}

func (*Ident) isTokenTree() {}

func (n *Ident) Span() Span {
	return n.span
}

func (n *Ident) Name() string {
	return n.name
}

// IsRaw reports whether the identifier was written as `r#name`.
func (n *Ident) IsRaw() bool {
	return strings.HasPrefix(n.name, "r#")
}

// Unraw returns the identifier without any `r#` prefix.
func (n *Ident) Unraw() string {
	return strings.TrimPrefix(n.name, "r#")
}

type Spacing uint8

const (
	Alone Spacing = iota
	Joint
)

type Punct struct {
	char    byte
	spacing Spacing
	span    Span
}

func NewPunct(char byte, spacing Spacing, span Span) *Punct {
	return &Punct{char, spacing, span}
}

func (*Punct) isTokenTree() {}

func (n *Punct) Span() Span {
	return n.span
}

func (n *Punct) Char() byte {
	return n.char
}

func (n *Punct) Spacing() Spacing {
	return n.spacing
}

type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitStr
	LitByteStr
	LitCStr
	LitChar
	LitByte
)

type Literal struct {
	kind LiteralKind
	raw  string
	span Span
}

func NewLiteral(kind LiteralKind, raw string, span Span) *Literal {
	return &Literal{kind, raw, span}
}

func (*Literal) isTokenTree() {}

func (n *Literal) Span() Span {
	return n.span
}

func (n *Literal) Kind() LiteralKind {
	return n.kind
}

func (n *Literal) Raw() string {
	return n.raw
}

type Delimiter uint8

const (
	Parenthesis Delimiter = iota
	Brace
	Bracket
)

func (d Delimiter) open() string {
	switch d {
	case Parenthesis:
		return "("
	case Brace:
		return "{"
	default:
		return "["
	}
}

func (d Delimiter) close() string {
	switch d {
	case Parenthesis:
		return ")"
	case Brace:
		return "}"
	default:
		return "]"
	}
}

type Group struct {
	delim  Delimiter
	stream TokenStream
	span   Span
}

func NewGroup(delim Delimiter, stream TokenStream, span Span) *Group {
	return &Group{delim, stream, span}
}

func (*Group) isTokenTree() {}

// Span covers both delimiters.
func (n *Group) Span() Span {
	return n.span
}

func (n *Group) Delim() Delimiter {
	return n.delim
}

func (n *Group) Stream() TokenStream {
	return n.stream
}

func (n *Group) OpenSpan() Span {
	return Span{n.span.start, 1}
}

func (n *Group) CloseSpan() Span {
	if n.span.len == 0 {
		return n.span
	}
	return Span{n.span.End() - 1, 1}
}

// Lex splits the source into token trees. Comments are dropped, except for
// doc comments, which become `#[doc = "..."]` attributes.
func Lex(src []byte) (TokenStream, error) {
	tokens, err := NewTokens(src)
	if err != nil {
		return nil, err
	}

	type flatToken struct {
		Token
		start uint32
	}
	var flat []flatToken
	for {
		start := tokens.Offset()
		var token Token
		if err := tokens.Next(&token); err != nil {
			return nil, err
		}
		if token.Kind == T_EOF {
			break
		}
		flat = append(flat, flatToken{token, start})
	}

	type frame struct {
		delim  Delimiter
		open   uint32
		stream TokenStream
	}
	stack := []*frame{{}}
	top := stack[0]

	for ii, tok := range flat {
		span := Span{tok.start, tok.Len}
		text := string(src[tok.start : tok.start+tok.Len])
		switch tok.Kind {
		case T_SPACE, T_NEWLINE, T_COMMENT:
		case T_DOC_COMMENT, T_INNER_DOC_COMMENT:
			top.stream = append(top.stream, docAttribute(text, tok.Kind == T_INNER_DOC_COMMENT, span)...)
		case T_PUNCT:
			spacing := Alone
			if ii+1 < len(flat) && flat[ii+1].Kind == T_PUNCT {
				spacing = Joint
			}
			top.stream = append(top.stream, NewPunct(text[0], spacing, span))
		case T_LIFETIME:
			top.stream = append(top.stream,
				NewPunct('\'', Joint, Span{tok.start, 1}),
				NewIdent(text[1:], Span{tok.start + 1, tok.Len - 1}),
			)
		case T_IDENT:
			top.stream = append(top.stream, NewIdent(text, span))
		case T_INT_LIT:
			top.stream = append(top.stream, NewLiteral(LitInt, text, span))
		case T_FLOAT_LIT:
			top.stream = append(top.stream, NewLiteral(LitFloat, text, span))
		case T_STR_LIT, T_RAW_STR_LIT:
			top.stream = append(top.stream, NewLiteral(LitStr, text, span))
		case T_BYTE_STR_LIT, T_RAW_BYTE_STR_LIT:
			top.stream = append(top.stream, NewLiteral(LitByteStr, text, span))
		case T_C_STR_LIT:
			top.stream = append(top.stream, NewLiteral(LitCStr, text, span))
		case T_CHAR_LIT:
			top.stream = append(top.stream, NewLiteral(LitChar, text, span))
		case T_BYTE_LIT:
			top.stream = append(top.stream, NewLiteral(LitByte, text, span))
		case T_OPEN_PAREN, T_OPEN_CURL, T_OPEN_SQUARE:
			delim := Parenthesis
			if tok.Kind == T_OPEN_CURL {
				delim = Brace
			} else if tok.Kind == T_OPEN_SQUARE {
				delim = Bracket
			}
			top = &frame{delim: delim, open: tok.start}
			stack = append(stack, top)
		case T_CLOSE_PAREN, T_CLOSE_CURL, T_CLOSE_SQUARE:
			delim := Parenthesis
			if tok.Kind == T_CLOSE_CURL {
				delim = Brace
			} else if tok.Kind == T_CLOSE_SQUARE {
				delim = Bracket
			}
			if len(stack) == 1 {
				return nil, errUnexpectedCloseDelim(text[0], span)
			}
			if top.delim != delim {
				return nil, errMismatchedCloseDelim(top.delim.open()[0], text[0], span)
			}
			group := NewGroup(delim, top.stream, Span{top.open, span.End() - top.open})
			stack = stack[:len(stack)-1]
			top = stack[len(stack)-1]
			top.stream = append(top.stream, group)
		}
	}
	if len(stack) > 1 {
		return nil, errUnclosedDelim(top.delim.open()[0], Span{top.open, 1})
	}
	return stack[0].stream, nil
}

func docAttribute(comment string, inner bool, span Span) TokenStream {
	var text string
	if strings.HasPrefix(comment, "/*") {
		text = comment[3 : len(comment)-2]
	} else {
		text = comment[3:]
	}
	out := TokenStream{NewPunct('#', Alone, span)}
	if inner {
		out[0] = NewPunct('#', Joint, span)
		out = append(out, NewPunct('!', Alone, span))
	}
	return append(out, NewGroup(Bracket, TokenStream{
		NewIdent("doc", span),
		NewPunct('=', Alone, span),
		NewLiteral(LitStr, QuoteString(text), span),
	}, span))
}
