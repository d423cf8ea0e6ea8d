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
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// ParseType parses ts as exactly one type.
func ParseType(ts syntax.TokenStream, end syntax.Span) (Type, error) {
	p := &parser{c: syntax.NewCursor(ts, end)}
	ty, err := p.typ(true)
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return ty, nil
}

// ParseTypeFrom parses a type at the cursor, leaving any following tokens
// such as `=` or `,` unconsumed.
func ParseTypeFrom(c *syntax.Cursor) (Type, error) {
	return (&parser{c: c}).typ(true)
}

// typ parses a type. If allowPlus is false, a trailing `+ Bound` is left
// for the caller, as in `&dyn A + B` or `x as u8 + 1`.
func (p *parser) typ(allowPlus bool) (Type, error) {
	start := p.c.Span()
	switch tt := p.c.Peek().(type) {
	case *syntax.Group:
		switch tt.Delim() {
		case syntax.Parenthesis:
			p.c.Next()
			return p.parenType(tt)
		case syntax.Bracket:
			p.c.Next()
			sub := p.sub(tt)
			elem, err := sub.typ(true)
			if err != nil {
				return nil, err
			}
			if sub.c.EatPunct(";") {
				n, err := sub.expr()
				if err != nil {
					return nil, err
				}
				if err := sub.expectEOF(); err != nil {
					return nil, err
				}
				return &ArrayType{node: node{tt.Span()}, Elem: elem, Len: n}, nil
			}
			if err := sub.expectEOF(); err != nil {
				return nil, err
			}
			return &SliceType{node: node{tt.Span()}, Elem: elem}, nil
		}
	case *syntax.Punct:
		switch tt.Char() {
		case '!':
			p.c.Next()
			return &NeverType{node: node{tt.Span()}}, nil
		case '&':
			p.c.Next()
			ref := &RefType{}
			if p.c.PeekPunct("'") {
				lifetime, err := p.lifetime()
				if err != nil {
					return nil, err
				}
				ref.Lifetime = lifetime
			}
			ref.Mut = p.c.EatIdent("mut")
			elem, err := p.typ(false)
			if err != nil {
				return nil, err
			}
			ref.Elem = elem
			ref.span = start.Join(elem.Span())
			return ref, nil
		case '*':
			p.c.Next()
			ptr := &PtrType{}
			if p.c.EatIdent("mut") {
				ptr.Mut = true
			} else if !p.c.EatIdent("const") {
				return nil, errExpectedType(p.c.Peek(), p.c.Span())
			}
			elem, err := p.typ(false)
			if err != nil {
				return nil, err
			}
			ptr.Elem = elem
			ptr.span = start.Join(elem.Span())
			return ptr, nil
		case '<':
			return p.pathType(allowPlus)
		case ':':
			if p.c.PeekPunct("::") {
				return p.pathType(allowPlus)
			}
		}
	case *syntax.Ident:
		switch tt.Name() {
		case "_":
			p.c.Next()
			return &InferType{node: node{tt.Span()}}, nil
		case "dyn", "impl":
			p.c.Next()
			bounds, err := p.bounds(allowPlus)
			if err != nil {
				return nil, err
			}
			span := p.since(start)
			if tt.Name() == "impl" {
				return &ImplTrait{node: node{span}, Bounds: bounds}, nil
			}
			return &TraitObject{node: node{span}, Dyn: true, Bounds: bounds}, nil
		case "fn", "unsafe", "extern":
			fn, err := p.fnType(nil)
			if err != nil {
				return nil, err
			}
			return fn, nil
		case "for":
			lifetimes, err := p.forLifetimes()
			if err != nil {
				return nil, err
			}
			if p.c.PeekIdent("fn") || p.c.PeekIdent("unsafe") || p.c.PeekIdent("extern") {
				fn, err := p.fnType(lifetimes)
				if err != nil {
					return nil, err
				}
				fn.span = p.since(start)
				return fn, nil
			}
			path, err := p.boundPath()
			if err != nil {
				return nil, err
			}
			first := &TraitBound{
				node:         node{p.since(start)},
				ForLifetimes: lifetimes,
				Path:         path,
			}
			return p.bareTraitObject(first, allowPlus)
		}
		if syntax.IsKeyword(tt.Name()) && tt.Name() != "crate" {
			return nil, errExpectedType(tt, tt.Span())
		}
		return p.pathType(allowPlus)
	}
	return nil, errExpectedType(p.c.Peek(), p.c.Span())
}

func (p *parser) parenType(group *syntax.Group) (Type, error) {
	sub := p.sub(group)
	var elems []Type
	trailing := false
	for !sub.c.EOF() {
		elem, err := sub.typ(true)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		trailing = false
		if sub.c.EOF() {
			break
		}
		if err := sub.expect(","); err != nil {
			return nil, err
		}
		trailing = true
	}
	if len(elems) == 1 && !trailing {
		return &ParenType{node: node{group.Span()}, Elem: elems[0]}, nil
	}
	return &TupleType{node: node{group.Span()}, Elems: elems}, nil
}

func (p *parser) pathType(allowPlus bool) (Type, error) {
	start := p.c.Span()
	qself, path, err := p.path(true)
	if err != nil {
		return nil, err
	}
	if qself == nil && p.peekAlone('!') {
		if group, ok := p.c.PeekN(1).(*syntax.Group); ok {
			p.c.Next()
			p.c.Next()
			return &MacroType{
				node: node{start.Join(group.Span())},
				Path: path,
				Body: group,
			}, nil
		}
	}
	ty := &PathType{
		node:  node{p.since(start)},
		QSelf: qself,
		Path:  path,
	}
	if qself == nil && allowPlus && p.c.PeekPunct("+") {
		return p.bareTraitObject(&TraitBound{node: ty.node, Path: path}, true)
	}
	return ty, nil
}

// bareTraitObject parses the rest of a trait object written without `dyn`.
func (p *parser) bareTraitObject(first *TraitBound, allowPlus bool) (Type, error) {
	bounds := []Bound{first}
	if allowPlus && p.c.EatPunct("+") {
		rest, err := p.bounds(true)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, rest...)
	}
	return &TraitObject{
		node:   node{p.since(first.Span())},
		Bounds: bounds,
	}, nil
}

// path parses a possibly qualified path. In type style, generic arguments
// may follow a segment directly (`Vec<u8>`) and `Fn(A) -> B` sugar is
// accepted. In expression style they need a turbofish (`Vec::<u8>`).
func (p *parser) path(typeStyle bool) (*QSelf, *Path, error) {
	start := p.c.Span()
	path := &Path{}
	var qself *QSelf
	if p.c.PeekPunct("<") {
		var err error
		if qself, path, err = p.qself(); err != nil {
			return nil, nil, err
		}
		if err := p.expect("::"); err != nil {
			return nil, nil, err
		}
	} else if p.c.EatPunct("::") {
		path.Global = true
	}

	for {
		ident, err := p.ident()
		if err != nil {
			return nil, nil, err
		}
		seg := &PathSegment{node: node{ident.Span()}, Ident: ident}
		switch {
		case typeStyle && p.c.PeekPunct("<") && !p.c.PeekPunct("<="):
			seg.Args, err = p.genericArgs()
		case p.c.PeekPunct("::") && isPunctAt(p.c, 2, '<'):
			p.c.EatPunct("::")
			seg.Args, err = p.genericArgs()
		case typeStyle && isFnTrait(ident):
			if group, ok := p.c.EatGroup(syntax.Parenthesis); ok {
				seg.Inputs, err = p.fnSugar(group)
			}
		}
		if err != nil {
			return nil, nil, err
		}
		seg.span = p.since(ident.Span())
		path.Segments = append(path.Segments, seg)

		if !p.c.PeekPunct("::") {
			break
		}
		if _, ok := p.c.PeekN(2).(*syntax.Ident); !ok {
			break
		}
		p.c.EatPunct("::")
	}
	path.span = p.since(start)
	return qself, path, nil
}

func isPunctAt(c *syntax.Cursor, n int, char byte) bool {
	punct, ok := c.PeekN(n).(*syntax.Punct)
	return ok && punct.Char() == char
}

// isFnTrait reports whether a path segment takes `(A) -> B` sugar.
func isFnTrait(ident *syntax.Ident) bool {
	switch ident.Name() {
	case "Fn", "FnMut", "FnOnce", "AsyncFn", "AsyncFnMut", "AsyncFnOnce":
		return true
	}
	return false
}

func (p *parser) fnSugar(group *syntax.Group) (*FnSugar, error) {
	sugar := &FnSugar{}
	sub := p.sub(group)
	for !sub.c.EOF() {
		input, err := sub.typ(true)
		if err != nil {
			return nil, err
		}
		sugar.Inputs = append(sugar.Inputs, input)
		if !sub.c.EOF() {
			if err := sub.expect(","); err != nil {
				return nil, err
			}
		}
	}
	if p.c.EatPunct("->") {
		output, err := p.typ(false)
		if err != nil {
			return nil, err
		}
		sugar.Output = output
	}
	sugar.span = p.since(group.Span())
	return sugar, nil
}

// qself parses `<T as Trait>` and returns the trait path, to which the
// caller appends further segments.
func (p *parser) qself() (*QSelf, *Path, error) {
	start := p.c.Span()
	p.c.EatPunct("<")
	ty, err := p.typ(false)
	if err != nil {
		return nil, nil, err
	}
	qself := &QSelf{Type: ty}
	path := &Path{}
	if p.c.EatIdent("as") {
		_, trait, err := p.path(true)
		if err != nil {
			return nil, nil, err
		}
		path = trait
		qself.Position = len(trait.Segments)
	}
	if err := p.expect(">"); err != nil {
		return nil, nil, err
	}
	qself.span = p.since(start)
	return qself, path, nil
}

func (p *parser) genericArgs() (*GenericArgs, error) {
	start := p.c.Span()
	if err := p.expect("<"); err != nil {
		return nil, err
	}
	args := &GenericArgs{}
	for !p.c.PeekPunct(">") {
		arg, err := p.genericArg()
		if err != nil {
			return nil, err
		}
		args.Args = append(args.Args, arg)
		if !p.c.EatPunct(",") {
			break
		}
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	args.span = p.since(start)
	return args, nil
}

func (p *parser) genericArg() (GenericArg, error) {
	start := p.c.Span()
	switch tt := p.c.Peek().(type) {
	case *syntax.Punct:
		switch tt.Char() {
		case '\'':
			lifetime, err := p.lifetime()
			if err != nil {
				return nil, err
			}
			return lifetime, nil
		case '-':
			if _, ok := p.c.PeekN(1).(*syntax.Literal); ok {
				e, err := p.unary()
				if err != nil {
					return nil, err
				}
				return &ConstArg{node: node{e.Span()}, Expr: e}, nil
			}
		}
	case *syntax.Literal:
		p.c.Next()
		lit := &Lit{node: node{tt.Span()}, Token: tt}
		return &ConstArg{node: lit.node, Expr: lit}, nil
	case *syntax.Group:
		if tt.Delim() == syntax.Brace {
			p.c.Next()
			block := &Block{node: node{tt.Span()}, Body: tt}
			return &ConstArg{node: block.node, Expr: block}, nil
		}
	case *syntax.Ident:
		next, _ := p.c.PeekN(1).(*syntax.Punct)
		if next != nil && next.Spacing() == syntax.Alone {
			switch next.Char() {
			case '=':
				p.c.Next()
				p.c.Next()
				ty, err := p.typ(true)
				if err != nil {
					return nil, err
				}
				return &AssocType{node: node{p.since(start)}, Ident: tt, Type: ty}, nil
			case ':':
				p.c.Next()
				p.c.Next()
				bounds, err := p.bounds(true)
				if err != nil {
					return nil, err
				}
				return &Constraint{node: node{p.since(start)}, Ident: tt, Bounds: bounds}, nil
			}
		}
	}
	ty, err := p.typ(true)
	if err != nil {
		return nil, err
	}
	return &TypeArg{node: node{ty.Span()}, Type: ty}, nil
}

func (p *parser) lifetime() (*Lifetime, error) {
	quote, ok := p.c.Peek().(*syntax.Punct)
	if !ok || quote.Char() != '\'' {
		return nil, errExpectedLifetime(p.c.Peek(), p.c.Span())
	}
	ident, ok := p.c.PeekN(1).(*syntax.Ident)
	if !ok {
		return nil, errExpectedLifetime(p.c.PeekN(1), quote.Span())
	}
	p.c.Next()
	p.c.Next()
	return &Lifetime{
		node: node{quote.Span().Join(ident.Span())},
		Name: ident.Name(),
	}, nil
}

func (p *parser) forLifetimes() ([]*Lifetime, error) {
	p.c.EatIdent("for")
	if err := p.expect("<"); err != nil {
		return nil, err
	}
	var lifetimes []*Lifetime
	for !p.c.PeekPunct(">") {
		lifetime, err := p.lifetime()
		if err != nil {
			return nil, err
		}
		lifetimes = append(lifetimes, lifetime)
		if !p.c.EatPunct(",") {
			break
		}
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	return lifetimes, nil
}

// bounds parses `A + B + 'a`. If allowPlus is false only one bound is read.
func (p *parser) bounds(allowPlus bool) ([]Bound, error) {
	var bounds []Bound
	for {
		bound, err := p.bound()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, bound)
		if !allowPlus || !p.c.PeekPunct("+") {
			return bounds, nil
		}
		p.c.EatPunct("+")
		if !p.canStartBound() {
			return bounds, nil
		}
	}
}

func (p *parser) canStartBound() bool {
	switch tt := p.c.Peek().(type) {
	case *syntax.Ident:
		return !syntax.IsKeyword(tt.Name()) || tt.Name() == "for" || tt.Name() == "crate"
	case *syntax.Group:
		return tt.Delim() == syntax.Parenthesis
	case *syntax.Punct:
		return tt.Char() == '\'' || tt.Char() == '?' || p.c.PeekPunct("::")
	}
	return false
}

func (p *parser) bound() (Bound, error) {
	start := p.c.Span()
	if p.c.PeekPunct("'") {
		lifetime, err := p.lifetime()
		if err != nil {
			return nil, err
		}
		return lifetime, nil
	}
	if group, ok := p.c.EatGroup(syntax.Parenthesis); ok {
		sub := p.sub(group)
		inner, err := sub.bound()
		if err != nil {
			return nil, err
		}
		if err := sub.expectEOF(); err != nil {
			return nil, err
		}
		trait, ok := inner.(*TraitBound)
		if !ok {
			return nil, errExpectedBound(group, group.Span())
		}
		return &TraitBound{
			node:         node{group.Span()},
			Paren:        true,
			Maybe:        trait.Maybe,
			ForLifetimes: trait.ForLifetimes,
			Path:         trait.Path,
		}, nil
	}
	if !p.canStartBound() {
		return nil, errExpectedBound(p.c.Peek(), p.c.Span())
	}
	bound := &TraitBound{}
	bound.Maybe = p.c.EatPunct("?")
	if p.c.PeekIdent("for") {
		lifetimes, err := p.forLifetimes()
		if err != nil {
			return nil, err
		}
		bound.ForLifetimes = lifetimes
	}
	path, err := p.boundPath()
	if err != nil {
		return nil, err
	}
	bound.Path = path
	bound.span = p.since(start)
	return bound, nil
}

func (p *parser) boundPath() (*Path, error) {
	qself, path, err := p.path(true)
	if err != nil {
		return nil, err
	}
	if qself != nil {
		return nil, errQualifiedBound(qself.Span())
	}
	return path, nil
}

func (p *parser) fnType(lifetimes []*Lifetime) (*FnType, error) {
	start := p.c.Span()
	fn := &FnType{ForLifetimes: lifetimes}
	fn.Unsafe = p.c.EatIdent("unsafe")
	if p.c.EatIdent("extern") {
		fn.Extern = true
		if lit, ok := p.c.Peek().(*syntax.Literal); ok && lit.Kind() == syntax.LitStr {
			p.c.Next()
			fn.ABI = lit
		}
	}
	if !p.c.EatIdent("fn") {
		return nil, errExpectedType(p.c.Peek(), p.c.Span())
	}
	group, ok := p.c.EatGroup(syntax.Parenthesis)
	if !ok {
		return nil, errExpectedPunct("(", p.c.Peek(), p.c.Span())
	}
	sub := p.sub(group)
	for !sub.c.EOF() {
		if sub.c.EatPunct("...") {
			fn.Variadic = true
			if err := sub.expectEOF(); err != nil {
				return nil, err
			}
			break
		}
		arg := &FnArg{}
		argStart := sub.c.Span()
		if ident, ok := sub.c.Peek().(*syntax.Ident); ok && sub.peekAloneAt(1, ':') {
			sub.c.Next()
			sub.c.Next()
			arg.Name = ident
		}
		ty, err := sub.typ(true)
		if err != nil {
			return nil, err
		}
		arg.Type = ty
		arg.span = sub.since(argStart)
		fn.Inputs = append(fn.Inputs, arg)
		if !sub.c.EOF() {
			if err := sub.expect(","); err != nil {
				return nil, err
			}
		}
	}
	if p.c.EatPunct("->") {
		output, err := p.typ(false)
		if err != nil {
			return nil, err
		}
		fn.Output = output
	}
	fn.span = p.since(start)
	return fn, nil
}

func (p *parser) peekAloneAt(n int, c byte) bool {
	punct, ok := p.c.PeekN(n).(*syntax.Punct)
	return ok && punct.Char() == c && punct.Spacing() == syntax.Alone
}
