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
	"strings"

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// Assignment is a `name = value` fragment.
type Assignment[V any] struct {
	Name  *syntax.Ident
	Eq    *syntax.Punct
	Value V

	span syntax.Span
}

func (a *Assignment[V]) Span() syntax.Span {
	return a.span
}

// OptionalAssignment is a `path` or `path = value` fragment, as used by
// configuration directives.
type OptionalAssignment[V any] struct {
	Path  []*syntax.Ident
	Eq    *syntax.Punct
	Value V

	span syntax.Span
}

func (a *OptionalAssignment[V]) Span() syntax.Span {
	return a.span
}

func (a *OptionalAssignment[V]) HasValue() bool {
	return a.Eq != nil
}

func (a *OptionalAssignment[V]) PathString() string {
	names := make([]string, 0, len(a.Path))
	for _, ident := range a.Path {
		names = append(names, ident.Name())
	}
	return strings.Join(names, "::")
}

func (a *OptionalAssignment[V]) PathSpan() syntax.Span {
	return a.Path[0].Span().Join(a.Path[len(a.Path)-1].Span())
}

func parseAssignment[V any](c *syntax.Cursor, value func(*syntax.Cursor) (V, error)) (*Assignment[V], error) {
	name, err := c.Ident()
	if err != nil {
		return nil, err
	}
	eq, ok := c.Peek().(*syntax.Punct)
	if !ok || eq.Char() != '=' {
		return nil, errExpectedPunct("=", c.Span())
	}
	c.Next()
	v, err := value(c)
	if err != nil {
		return nil, err
	}
	return &Assignment[V]{
		Name:  name,
		Eq:    eq,
		Value: v,
		span:  name.Span().Join(c.Prev().Span()),
	}, nil
}

func parseOptionalAssignment[V any](c *syntax.Cursor, value func(*syntax.Cursor) (V, error)) (*OptionalAssignment[V], error) {
	a := &OptionalAssignment[V]{}
	c.EatPunct("::")
	for {
		ident, err := c.Ident()
		if err != nil {
			return nil, err
		}
		a.Path = append(a.Path, ident)
		if !c.EatPunct("::") {
			break
		}
	}
	if eq, ok := c.Peek().(*syntax.Punct); ok && eq.Char() == '=' {
		c.Next()
		v, err := value(c)
		if err != nil {
			return nil, err
		}
		a.Eq = eq
		a.Value = v
	}
	a.span = a.Path[0].Span().Join(c.Prev().Span())
	return a, nil
}

// parseList parses comma-separated items up to the end of the cursor. A
// trailing comma is allowed.
func parseList[T any](c *syntax.Cursor, item func(*syntax.Cursor) (T, error)) ([]T, error) {
	var items []T
	for !c.EOF() {
		v, err := item(c)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if c.EOF() {
			break
		}
		if !c.EatPunct(",") {
			return nil, errExpectedPunct(",", c.Span())
		}
	}
	return items, nil
}
