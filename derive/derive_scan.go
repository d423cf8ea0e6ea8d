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

package derive

import (
	"github.com/NovaliX-Dev/custom-attrs/expr"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// rawValue is the unparsed tokens of a value, up to the next top-level
// comma. End is where an empty value is reported.
type rawValue struct {
	Tokens syntax.TokenStream
	End    syntax.Span
}

func (v rawValue) Span() syntax.Span {
	if len(v.Tokens) == 0 {
		return v.End
	}
	return v.Tokens.Span()
}

func scanValue(c *syntax.Cursor) (rawValue, error) {
	start := c.Pos()
	for !c.EOF() && !c.PeekPunct(",") {
		c.Next()
	}
	return rawValue{
		Tokens: c.Since(start),
		End:    c.Span(),
	}, nil
}

// parseValueExpr parses raw as exactly one expression. Parse errors are
// reported at the last token of the value.
func parseValueExpr(raw rawValue) (expr.Expr, error) {
	if len(raw.Tokens) == 0 {
		return nil, errExpectedExpr(raw.End)
	}
	e, err := expr.ParseExpr(raw.Tokens, raw.End)
	if err != nil {
		return nil, reanchor(err, raw.Tokens[len(raw.Tokens)-1].Span())
	}
	return e, nil
}

func scanExpr(c *syntax.Cursor) (expr.Expr, error) {
	raw, _ := scanValue(c)
	return parseValueExpr(raw)
}
