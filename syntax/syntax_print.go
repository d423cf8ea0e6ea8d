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

var keywords = map[string]struct{}{
	"as": {}, "async": {}, "await": {}, "break": {}, "const": {},
	"continue": {}, "crate": {}, "dyn": {}, "else": {}, "enum": {},
	"extern": {}, "false": {}, "for": {}, "if": {}, "impl": {}, "in": {},
	"let": {}, "loop": {}, "match": {}, "mod": {}, "move": {}, "mut": {},
	"pub": {}, "ref": {}, "return": {}, "static": {}, "struct": {},
	"trait": {}, "true": {}, "type": {}, "unsafe": {}, "use": {},
	"where": {}, "while": {}, "yield": {},
}

// IsKeyword reports whether name is a reserved word that cannot be used
// as a plain identifier. `self`, `Self`, `super` and `fn` are handled by
// their callers.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// String renders the stream as source text.
func (ts TokenStream) String() string {
	var buf strings.Builder
	printStream(&buf, ts)
	return buf.String()
}

func printStream(buf *strings.Builder, ts TokenStream) {
	var prev, prevPrev TokenTree
	for _, tt := range ts {
		if needSpace(prevPrev, prev, tt) {
			buf.WriteByte(' ')
		}
		printTree(buf, tt)
		prevPrev, prev = prev, tt
	}
}

func printTree(buf *strings.Builder, tt TokenTree) {
	switch tt := tt.(type) {
	case *Ident:
		buf.WriteString(tt.name)
	case *Punct:
		buf.WriteByte(tt.char)
	case *Literal:
		buf.WriteString(tt.raw)
	case *Group:
		buf.WriteString(tt.delim.open())
		if tt.delim == Brace && len(tt.stream) > 0 {
			buf.WriteByte(' ')
			printStream(buf, tt.stream)
			buf.WriteByte(' ')
		} else {
			printStream(buf, tt.stream)
		}
		buf.WriteString(tt.delim.close())
	}
}

func isPunct(tt TokenTree, c byte) bool {
	p, ok := tt.(*Punct)
	return ok && p.char == c
}

// isOperand reports whether tt can end an operand, which decides whether a
// following `&`, `*`, `-` or `!` is binary.
func isOperand(tt TokenTree) bool {
	switch tt := tt.(type) {
	case *Literal, *Group:
		return true
	case *Ident:
		return !IsKeyword(tt.name) || tt.name == "true" || tt.name == "false"
	}
	return false
}

func needSpace(prevPrev, prev, cur TokenTree) bool {
	if prev == nil {
		return false
	}
	if p, ok := prev.(*Punct); ok {
		if p.spacing == Joint {
			return false
		}
		switch p.char {
		case '.', '#', '$':
			return false
		case ':':
			if p2, ok := prevPrev.(*Punct); ok && p2.char == ':' && p2.spacing == Joint {
				return false
			}
		case '&', '*', '-', '!':
			if !isOperand(prevPrev) {
				return false
			}
		}
	}
	switch cur := cur.(type) {
	case *Punct:
		switch cur.char {
		case ',', ';', '?':
			return false
		case '.':
			p, ok := prev.(*Punct)
			return ok && p.char != '?'
		case '!':
			if ident, ok := prev.(*Ident); ok && cur.spacing == Alone {
				return IsKeyword(ident.name)
			}
		case ':':
			if cur.spacing == Joint {
				return false
			}
			if _, ok := prev.(*Ident); ok {
				return false
			}
		}
	case *Group:
		if cur.delim == Brace {
			return true
		}
		switch prev := prev.(type) {
		case *Ident:
			return IsKeyword(prev.name) && prev.name != "pub"
		case *Group:
			return false
		case *Punct:
			return prev.char != '!'
		}
	}
	return true
}
