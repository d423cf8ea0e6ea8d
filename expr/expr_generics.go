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

package expr

import (
	"strings"

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

type ParamKind uint8

const (
	ParamLifetime ParamKind = iota
	ParamType
	ParamConst
)

// GenericParam is one parameter of an item's generic parameter list.
type GenericParam struct {
	node
	Kind ParamKind
	Name *syntax.Ident
	// Bounds are lifetimes for a lifetime parameter and trait or lifetime
	// bounds for a type parameter.
	Bounds []Bound
	// Type is the type of a const parameter.
	Type Type
	// Default is a Type for type parameters and an Expr for const
	// parameters. It is nil if there is no default.
	Default Node
}

type WherePredicate struct {
	node
	ForLifetimes []*Lifetime
	// Exactly one of Lifetime and Type is set.
	Lifetime *Lifetime
	Type     Type
	Bounds   []Bound
}

type Generics struct {
	Params []*GenericParam
	Where  []*WherePredicate
}

func (n *GenericParam) String() string {
	var pr printer
	pr.param(n, true)
	return pr.buf.String()
}

func (n *WherePredicate) String() string {
	var pr printer
	pr.predicate(n)
	return pr.buf.String()
}

// ParseGenerics parses the generic parameters and where clause of an item.
func ParseGenerics(g syntax.Generics) (*Generics, error) {
	out := &Generics{}
	end := g.Span()
	if end.Len() > 0 {
		end = syntax.NewSpan(end.End()-1, 1)
	}
	for _, tokens := range syntax.SplitTypes(g.Params()) {
		param, err := parseParam(tokens, end)
		if err != nil {
			return nil, err
		}
		out.Params = append(out.Params, param)
	}
	if where := g.Where(); len(where) > 0 {
		whereEnd := where[len(where)-1].Span()
		for _, tokens := range syntax.SplitTypes(where) {
			pred, err := parsePredicate(tokens, whereEnd)
			if err != nil {
				return nil, err
			}
			out.Where = append(out.Where, pred)
		}
	}
	return out, nil
}

func parseParam(tokens syntax.TokenStream, end syntax.Span) (*GenericParam, error) {
	c := syntax.NewCursor(tokens, end)
	if _, err := syntax.ParseAttributes(c); err != nil {
		return nil, err
	}
	p := &parser{c: c}
	start := c.Span()
	param := &GenericParam{}

	switch {
	case c.PeekPunct("'"):
		lifetime, err := p.lifetime()
		if err != nil {
			return nil, err
		}
		param.Kind = ParamLifetime
		param.Name = syntax.NewIdent(lifetime.Name, lifetime.Span())
		if c.EatPunct(":") {
			for !c.EOF() {
				bound, err := p.lifetime()
				if err != nil {
					return nil, err
				}
				param.Bounds = append(param.Bounds, bound)
				if !c.EatPunct("+") {
					break
				}
			}
		}
	case c.PeekIdent("const"):
		c.Next()
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		param.Kind = ParamConst
		param.Name = name
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		if param.Type, err = p.typ(false); err != nil {
			return nil, err
		}
		if c.EatPunct("=") {
			value, err := p.constDefault()
			if err != nil {
				return nil, err
			}
			param.Default = value
		}
	default:
		name, ok := c.Peek().(*syntax.Ident)
		if !ok {
			return nil, errExpectedGenericParam(c.Peek(), c.Span())
		}
		c.Next()
		param.Kind = ParamType
		param.Name = name
		if c.EatPunct(":") && !c.PeekPunct("=") && !c.EOF() {
			bounds, err := p.bounds(true)
			if err != nil {
				return nil, err
			}
			param.Bounds = bounds
		}
		if c.EatPunct("=") {
			ty, err := p.typ(true)
			if err != nil {
				return nil, err
			}
			param.Default = ty
		}
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	param.span = p.since(start)
	return param, nil
}

// constDefault parses the default of a const parameter, which is a
// literal, a block, or a path.
func (p *parser) constDefault() (Expr, error) {
	switch tt := p.c.Peek().(type) {
	case *syntax.Literal:
		p.c.Next()
		return &Lit{node: node{tt.Span()}, Token: tt}, nil
	case *syntax.Group:
		if tt.Delim() == syntax.Brace {
			p.c.Next()
			return &Block{node: node{tt.Span()}, Body: tt}, nil
		}
	}
	return p.unary()
}

func parsePredicate(tokens syntax.TokenStream, end syntax.Span) (*WherePredicate, error) {
	c := syntax.NewCursor(tokens, end)
	p := &parser{c: c}
	start := c.Span()
	pred := &WherePredicate{}

	if c.PeekPunct("'") {
		lifetime, err := p.lifetime()
		if err != nil {
			return nil, err
		}
		pred.Lifetime = lifetime
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		for !c.EOF() {
			bound, err := p.lifetime()
			if err != nil {
				return nil, err
			}
			pred.Bounds = append(pred.Bounds, bound)
			if !c.EatPunct("+") {
				break
			}
		}
	} else {
		if c.PeekIdent("for") {
			lifetimes, err := p.forLifetimes()
			if err != nil {
				return nil, err
			}
			pred.ForLifetimes = lifetimes
		}
		ty, err := p.typ(false)
		if err != nil {
			return nil, err
		}
		pred.Type = ty
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		if !c.EOF() {
			if pred.Bounds, err = p.bounds(true); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	pred.span = p.since(start)
	return pred, nil
}

// ImplParams renders the parameter list for an `impl` header, without
// defaults. It is empty if there are no parameters.
func (g *Generics) ImplParams() string {
	if len(g.Params) == 0 {
		return ""
	}
	var pr printer
	pr.write("<")
	for ii, param := range g.Params {
		if ii > 0 {
			pr.write(", ")
		}
		pr.param(param, false)
	}
	pr.write(">")
	return pr.buf.String()
}

// TypeArgs renders the parameters as arguments, such as `<'a, T, N>`.
func (g *Generics) TypeArgs() string {
	if len(g.Params) == 0 {
		return ""
	}
	names := make([]string, 0, len(g.Params))
	for _, param := range g.Params {
		if param.Kind == ParamLifetime {
			names = append(names, "'"+param.Name.Name())
		} else {
			names = append(names, param.Name.Name())
		}
	}
	return "<" + strings.Join(names, ", ") + ">"
}

// WhereClause renders the where clause, or "" if there is none.
func (g *Generics) WhereClause() string {
	if len(g.Where) == 0 {
		return ""
	}
	var pr printer
	pr.write("where ")
	for ii, pred := range g.Where {
		if ii > 0 {
			pr.write(", ")
		}
		pr.predicate(pred)
	}
	return pr.buf.String()
}

func (pr *printer) param(param *GenericParam, withDefault bool) {
	switch param.Kind {
	case ParamLifetime:
		pr.write("'" + param.Name.Name())
		if len(param.Bounds) > 0 {
			pr.write(": ")
			pr.bounds(param.Bounds)
		}
	case ParamType:
		pr.write(param.Name.Name())
		if len(param.Bounds) > 0 {
			pr.write(": ")
			pr.bounds(param.Bounds)
		}
		if withDefault && param.Default != nil {
			pr.write(" = ")
			pr.node(param.Default)
		}
	case ParamConst:
		pr.write("const " + param.Name.Name() + ": ")
		pr.ty(param.Type)
		if withDefault && param.Default != nil {
			pr.write(" = ")
			pr.node(param.Default)
		}
	}
}

func (pr *printer) predicate(pred *WherePredicate) {
	pr.forLifetimes(pred.ForLifetimes)
	if pred.Lifetime != nil {
		pr.write(pred.Lifetime.String())
	} else {
		pr.ty(pred.Type)
	}
	pr.write(":")
	if len(pred.Bounds) > 0 {
		pr.write(" ")
		pr.bounds(pred.Bounds)
	}
}
