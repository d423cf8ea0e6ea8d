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

type ParseOption interface {
	apply(*ParseOptions)
}

type parseOption func(*ParseOptions)

func (f parseOption) apply(opts *ParseOptions) { f(opts) }

// WithDerive restricts the parsed items to those deriving the named macro.
func WithDerive(name string) ParseOption {
	return parseOption(func(opts *ParseOptions) {
		opts.derive = name
	})
}

// WithNestedModules controls whether items inside inline `mod name { ... }`
// blocks are returned. The default is true.
func WithNestedModules(nested bool) ParseOption {
	return parseOption(func(opts *ParseOptions) {
		opts.nestedModules = nested
	})
}

func Parse(src []byte, opts ...ParseOption) (*File, error) {
	return NewParseOptions(opts...).ParseFile(src)
}

type ParseOptions struct {
	derive        string
	nestedModules bool
}

func NewParseOptions(opts ...ParseOption) *ParseOptions {
	parseOpts := &ParseOptions{
		nestedModules: true,
	}
	for _, opt := range opts {
		opt.apply(parseOpts)
	}
	return parseOpts
}

func (opts *ParseOptions) ParseFile(src []byte) (*File, error) {
	stream, err := Lex(src)
	if err != nil {
		return nil, err
	}
	ctx := &parseCtx{opts: opts}
	ctx.items(NewCursor(stream, Span{uint32(len(src)), 0}))
	if ctx.err != nil {
		return nil, ctx.err
	}
	return &File{items: ctx.out}, nil
}

// ParseItem parses source containing exactly one enum, struct, or union.
func (opts *ParseOptions) ParseItem(src []byte) (*Item, error) {
	stream, err := Lex(src)
	if err != nil {
		return nil, err
	}
	ctx := &parseCtx{opts: opts}
	c := NewCursor(stream, Span{uint32(len(src)), 0})
	item := ctx.item(c)
	if ctx.err != nil {
		return nil, ctx.err
	}
	if item == nil {
		return nil, errExpectedItem(stream, Span{uint32(len(src)), 0})
	}
	return item, nil
}

type parseCtx struct {
	opts *ParseOptions
	out  []*Item
	err  error
}

func (ctx *parseCtx) items(c *Cursor) {
	for !c.EOF() && ctx.err == nil {
		start := c.Pos()
		item := ctx.item(c)
		if ctx.err != nil {
			return
		}
		if item != nil {
			if ctx.opts.derive == "" || item.Derives(ctx.opts.derive) {
				ctx.out = append(ctx.out, item)
			}
			continue
		}
		if c.Pos() == start {
			c.Next()
		}
	}
}

// item parses an enum, struct, or union at the cursor. Any other item is
// skipped and nil is returned. Inline modules are descended into.
func (ctx *parseCtx) item(c *Cursor) *Item {
	attrs, err := ParseAttributes(c)
	if err != nil {
		ctx.err = err
		return nil
	}
	vis := ParseVisibility(c)

	keyword, _ := c.Peek().(*Ident)
	if keyword == nil {
		skipItem(c)
		return nil
	}

	var kind ItemKind
	switch keyword.name {
	case "enum":
		kind = ItemEnum
	case "struct":
		kind = ItemStruct
	case "union":
		if _, ok := c.PeekN(1).(*Ident); !ok {
			skipItem(c)
			return nil
		}
		kind = ItemUnion
	case "mod":
		c.Next()
		if _, err := c.Ident(); err != nil {
			ctx.err = err
			return nil
		}
		if body, ok := c.EatGroup(Brace); ok {
			if ctx.opts.nestedModules {
				ctx.items(GroupCursor(body))
			}
		} else {
			c.EatPunct(";")
		}
		return nil
	default:
		skipItem(c)
		return nil
	}
	c.Next()

	item := &Item{
		attrs:   attrs,
		vis:     vis,
		kind:    kind,
		keyword: keyword,
	}
	if item.name, err = c.Ident(); err != nil {
		ctx.err = err
		return nil
	}
	if item.generics, err = parseGenerics(c); err != nil {
		ctx.err = err
		return nil
	}

	if kind == ItemStruct {
		if group, ok := c.EatGroup(Parenthesis); ok {
			item.fields, err = parsePositionalFields(group)
			if err == nil {
				item.generics.where = parseWhere(c)
				err = c.Expect(";")
			}
		} else if item.generics.where = parseWhere(c); c.EatPunct(";") {
			item.fields = Fields{kind: FieldsUnit}
		} else if group, ok := c.EatGroup(Brace); ok {
			item.fields, err = parseNamedFields(group)
		} else {
			err = errExpectedItemBody(kind, c.Peek(), c.Span())
		}
	} else {
		item.generics.where = parseWhere(c)
		group, ok := c.EatGroup(Brace)
		if !ok {
			err = errExpectedItemBody(kind, c.Peek(), c.Span())
		} else if kind == ItemEnum {
			item.variants, err = parseVariants(group)
		} else {
			item.fields, err = parseNamedFields(group)
		}
	}
	if err != nil {
		ctx.err = err
		return nil
	}

	item.span = keyword.span.Join(c.Prev().Span())
	if len(attrs) > 0 {
		item.span = item.span.Join(attrs[0].Span())
	}
	return item
}

// skipItem consumes tokens up to and including the next top-level `;` or
// brace group.
func skipItem(c *Cursor) {
	for !c.EOF() {
		tt := c.Next()
		if isPunct(tt, ';') {
			return
		}
		if group, ok := tt.(*Group); ok && group.delim == Brace {
			return
		}
	}
}

// ParseAttributes consumes outer attributes. Inner attributes (`#![...]`)
// are skipped.
func ParseAttributes(c *Cursor) ([]*Attribute, error) {
	var attrs []*Attribute
	for c.PeekPunct("#") {
		pound := c.Next().(*Punct)
		if c.PeekPunct("!") {
			if _, ok := c.PeekN(1).(*Group); ok {
				c.Next()
				c.Next()
				continue
			}
		}
		bracket, ok := c.EatGroup(Bracket)
		if !ok {
			return nil, errExpectedAttrBody(c.Peek(), c.Span())
		}
		attr := &Attribute{pound: pound, bracket: bracket}
		inner := GroupCursor(bracket)
		inner.EatPunct("::")
		for {
			ident, ok := inner.Peek().(*Ident)
			if !ok {
				break
			}
			inner.Next()
			attr.path = append(attr.path, ident)
			if !inner.EatPunct("::") {
				break
			}
		}
		attr.args = inner.Rest()
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// ParseVisibility consumes `pub`, `pub(crate)`, `pub(in path)` and the like.
// It returns the inherited (empty) visibility if none is present.
func ParseVisibility(c *Cursor) Visibility {
	start := c.Pos()
	if c.EatIdent("pub") {
		if group, ok := c.PeekGroup(Parenthesis); ok {
			inner := GroupCursor(group)
			restricted := false
			switch {
			case inner.PeekIdent("crate"), inner.PeekIdent("self"), inner.PeekIdent("super"):
				restricted = len(group.stream) == 1
			case inner.PeekIdent("in"):
				restricted = true
			}
			if restricted {
				c.Next()
			}
		}
		return Visibility{tokens: c.Since(start)}
	}
	if c.PeekIdent("crate") && !isJointPunct(c.PeekN(1), ':') {
		c.Next()
		return Visibility{tokens: c.Since(start)}
	}
	return Visibility{}
}

func parseGenerics(c *Cursor) (Generics, error) {
	if !c.PeekPunct("<") {
		return Generics{}, nil
	}
	open := c.Next()
	start := c.Pos()
	depth := 1
	for !c.EOF() {
		tt := c.Next()
		p, ok := tt.(*Punct)
		if !ok {
			continue
		}
		switch p.char {
		case '<':
			depth += 1
		case '>':
			prev := c.stream[c.pos-2]
			if isJointPunct(prev, '-') {
				continue
			}
			depth -= 1
			if depth == 0 {
				return Generics{
					params: c.stream[start : c.pos-1],
					span:   open.Span().Join(p.span),
				}, nil
			}
		}
	}
	return Generics{}, errGenericsUnterminated(open.Span())
}

func parseWhere(c *Cursor) TokenStream {
	if !c.EatIdent("where") {
		return nil
	}
	start := c.Pos()
	for !c.EOF() {
		if _, ok := c.PeekGroup(Brace); ok {
			break
		}
		if c.PeekPunct(";") {
			break
		}
		c.Next()
	}
	return c.Since(start)
}

func parseVariants(body *Group) ([]*Variant, error) {
	var variants []*Variant
	c := GroupCursor(body)
	for !c.EOF() {
		attrs, err := ParseAttributes(c)
		if err != nil {
			return nil, err
		}
		ParseVisibility(c)
		name, err := c.Ident()
		if err != nil {
			return nil, err
		}
		variant := &Variant{
			attrs:  attrs,
			name:   name,
			fields: Fields{kind: FieldsUnit},
		}
		if group, ok := c.EatGroup(Parenthesis); ok {
			variant.fields, err = parsePositionalFields(group)
		} else if group, ok := c.EatGroup(Brace); ok {
			variant.fields, err = parseNamedFields(group)
		}
		if err != nil {
			return nil, err
		}
		if c.EatPunct("=") {
			start := c.Pos()
			for !c.EOF() && !c.PeekPunct(",") {
				c.Next()
			}
			variant.discriminant = c.Since(start)
		}
		variants = append(variants, variant)
		if !c.EOF() {
			if err := c.Expect(","); err != nil {
				return nil, err
			}
		}
	}
	return variants, nil
}

func parsePositionalFields(group *Group) (Fields, error) {
	fields := Fields{kind: FieldsPositional, group: group}
	for ii, tokens := range SplitTypes(group.stream) {
		c := NewCursor(tokens, group.CloseSpan())
		attrs, err := ParseAttributes(c)
		if err != nil {
			return Fields{}, err
		}
		vis := ParseVisibility(c)
		if c.EOF() {
			return Fields{}, errExpectedField(c.Peek(), c.Span())
		}
		fields.fields = append(fields.fields, &Field{
			attrs: attrs,
			vis:   vis,
			index: ii,
			ty:    c.Rest(),
		})
	}
	return fields, nil
}

func parseNamedFields(group *Group) (Fields, error) {
	fields := Fields{kind: FieldsNamed, group: group}
	for ii, tokens := range SplitTypes(group.stream) {
		c := NewCursor(tokens, group.CloseSpan())
		attrs, err := ParseAttributes(c)
		if err != nil {
			return Fields{}, err
		}
		vis := ParseVisibility(c)
		name, err := c.Ident()
		if err != nil {
			return Fields{}, err
		}
		if err := c.Expect(":"); err != nil {
			return Fields{}, err
		}
		if c.EOF() {
			return Fields{}, errExpectedField(c.Peek(), c.Span())
		}
		fields.fields = append(fields.fields, &Field{
			attrs: attrs,
			vis:   vis,
			name:  name,
			index: ii,
			ty:    c.Rest(),
		})
	}
	return fields, nil
}
