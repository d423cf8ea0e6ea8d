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
	"fmt"
	"strings"
)

type File struct {
	items []*Item
}

func (f *File) Items() []*Item {
	return f.items
}

type ItemKind uint8

const (
	ItemEnum ItemKind = iota
	ItemStruct
	ItemUnion
)

func (k ItemKind) String() string {
	switch k {
	case ItemEnum:
		return "enum"
	case ItemStruct:
		return "struct"
	case ItemUnion:
		return "union"
	default:
		return fmt.Sprintf("ItemKind(%d)", uint8(k))
	}
}

// Item is an enum, struct, or union declaration.
type Item struct {
	attrs    []*Attribute
	vis      Visibility
	kind     ItemKind
	keyword  *Ident
	name     *Ident
	generics Generics
	variants []*Variant
	fields   Fields
	span     Span
}

func (n *Item) Span() Span {
	return n.span
}

func (n *Item) Attrs() []*Attribute {
	return n.attrs
}

func (n *Item) Vis() Visibility {
	return n.vis
}

func (n *Item) Kind() ItemKind {
	return n.kind
}

// Keyword is the `enum`, `struct`, or `union` token.
func (n *Item) Keyword() *Ident {
	return n.keyword
}

func (n *Item) Name() *Ident {
	return n.name
}

func (n *Item) Generics() Generics {
	return n.generics
}

// Variants is empty unless the item is an enum.
func (n *Item) Variants() []*Variant {
	return n.variants
}

// Fields is the body of a struct or union.
func (n *Item) Fields() Fields {
	return n.fields
}

// Derives reports whether the item carries `#[derive(...)]` naming the
// given macro, possibly through a path such as `crate::Name`.
func (n *Item) Derives(name string) bool {
	for _, attr := range n.attrs {
		if !attr.IsNamed("derive") {
			continue
		}
		group, ok := attr.ArgsGroup()
		if !ok {
			continue
		}
		for _, path := range SplitPunct(group.stream, ',') {
			if len(path) == 0 {
				continue
			}
			if last, ok := path[len(path)-1].(*Ident); ok && last.name == name {
				return true
			}
		}
	}
	return false
}

// Attribute is an outer attribute such as `#[attr(a: u8)]`.
type Attribute struct {
	pound   *Punct
	bracket *Group
	path    []*Ident
	args    TokenStream
}

func (n *Attribute) Span() Span {
	return n.pound.span.Join(n.bracket.span)
}

func (n *Attribute) Pound() *Punct {
	return n.pound
}

func (n *Attribute) Bracket() *Group {
	return n.bracket
}

func (n *Attribute) Path() []*Ident {
	return n.path
}

func (n *Attribute) PathString() string {
	names := make([]string, 0, len(n.path))
	for _, ident := range n.path {
		names = append(names, ident.name)
	}
	return strings.Join(names, "::")
}

// PathSpan covers the attribute path, or the brackets if the path is empty.
func (n *Attribute) PathSpan() Span {
	if len(n.path) == 0 {
		return n.bracket.span
	}
	return n.path[0].span.Join(n.path[len(n.path)-1].span)
}

func (n *Attribute) IsNamed(name string) bool {
	return len(n.path) == 1 && n.path[0].name == name
}

// Args are the tokens following the path.
func (n *Attribute) Args() TokenStream {
	return n.args
}

// ArgsGroup returns the arguments if they are a single parenthesized group.
func (n *Attribute) ArgsGroup() (*Group, bool) {
	if len(n.args) != 1 {
		return nil, false
	}
	group, ok := n.args[0].(*Group)
	if !ok || group.delim != Parenthesis {
		return nil, false
	}
	return group, true
}

type Visibility struct {
	tokens TokenStream
}

func (v Visibility) Tokens() TokenStream {
	return v.tokens
}

func (v Visibility) IsInherited() bool {
	return len(v.tokens) == 0
}

func (v Visibility) String() string {
	return v.tokens.String()
}

func (v Visibility) Span() Span {
	return v.tokens.Span()
}

// Generics holds the raw tokens of a generic parameter list and where
// clause. They are parsed on demand by the expression package.
type Generics struct {
	params TokenStream
	where  TokenStream
	span   Span
}

func (g Generics) Params() TokenStream {
	return g.params
}

func (g Generics) Where() TokenStream {
	return g.where
}

// Span covers the angle brackets.
func (g Generics) Span() Span {
	return g.span
}

type FieldsKind uint8

const (
	FieldsUnit FieldsKind = iota
	FieldsPositional
	FieldsNamed
)

func (k FieldsKind) String() string {
	switch k {
	case FieldsUnit:
		return "unit"
	case FieldsPositional:
		return "positional"
	case FieldsNamed:
		return "named"
	default:
		return fmt.Sprintf("FieldsKind(%d)", uint8(k))
	}
}

type Fields struct {
	kind   FieldsKind
	fields []*Field
	group  *Group
}

func (f Fields) Kind() FieldsKind {
	return f.kind
}

func (f Fields) Fields() []*Field {
	return f.fields
}

func (f Fields) Len() int {
	return len(f.fields)
}

// Lookup finds a field by name, or by decimal index for positional fields.
func (f Fields) Lookup(name string) (*Field, bool) {
	for _, field := range f.fields {
		if field.Key() == name {
			return field, true
		}
	}
	return nil, false
}

type Field struct {
	attrs []*Attribute
	vis   Visibility
	name  *Ident
	index int
	ty    TokenStream
}

func (n *Field) Attrs() []*Attribute {
	return n.attrs
}

func (n *Field) Vis() Visibility {
	return n.vis
}

// Name is nil for positional fields.
func (n *Field) Name() *Ident {
	return n.name
}

func (n *Field) Index() int {
	return n.index
}

// Key is the field name, or its decimal index if the field is positional.
func (n *Field) Key() string {
	if n.name != nil {
		return n.name.Unraw()
	}
	return fmt.Sprintf("%d", n.index)
}

func (n *Field) Type() TokenStream {
	return n.ty
}

type Variant struct {
	attrs        []*Attribute
	name         *Ident
	fields       Fields
	discriminant TokenStream
}

func (n *Variant) Span() Span {
	span := n.name.span
	if n.fields.group != nil {
		span = span.Join(n.fields.group.span)
	}
	return span
}

func (n *Variant) Attrs() []*Attribute {
	return n.attrs
}

func (n *Variant) Name() *Ident {
	return n.name
}

func (n *Variant) Fields() Fields {
	return n.fields
}

func (n *Variant) Discriminant() TokenStream {
	return n.discriminant
}
