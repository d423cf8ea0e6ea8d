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

// Declaration is one `[#[config]] [vis] name: Type [= default]` entry of
// the attribute list on the enum.
type Declaration struct {
	Configs []*configBlock
	Vis     syntax.Visibility
	Name    *syntax.Ident
	Type    expr.Type
	Default expr.Expr
}

func parseDeclarations(attr *syntax.Attribute, name string) ([]*Declaration, error) {
	group, ok := attr.ArgsGroup()
	if !ok {
		span := attr.PathSpan()
		if args := attr.Args(); len(args) > 0 {
			span = args.Span()
		}
		return nil, errExpectedAttrList(name, span)
	}
	return parseList(syntax.GroupCursor(group), parseDeclaration)
}

func parseDeclaration(c *syntax.Cursor) (*Declaration, error) {
	configs, err := parseConfigBlocks(c)
	if err != nil {
		return nil, err
	}
	decl := &Declaration{
		Configs: configs,
		Vis:     syntax.ParseVisibility(c),
	}
	if decl.Name, err = c.Ident(); err != nil {
		return nil, err
	}
	if !c.EatPunct(":") {
		return nil, errExpectedPunct(":", c.Span())
	}
	if decl.Type, err = expr.ParseTypeFrom(c); err != nil {
		return nil, errExpectedType(asError(err).Span())
	}
	if c.EatPunct("=") {
		if decl.Default, err = scanExpr(c); err != nil {
			return nil, err
		}
	}
	return decl, nil
}
