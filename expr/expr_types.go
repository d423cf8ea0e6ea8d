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

type Type interface {
	Node
	isType()
}

// Path is a `::`-separated path such as `std::option::Option<T>`.
type Path struct {
	node
	Global   bool
	Segments []*PathSegment
}

type PathSegment struct {
	node
	Ident *syntax.Ident
	// At most one of Args and Inputs is set. Inputs holds the
	// parenthesized sugar of `Fn(A) -> B`.
	Args   *GenericArgs
	Inputs *FnSugar
}

type FnSugar struct {
	node
	Inputs []Type
	Output Type
}

// Names returns the segment identifiers, for example
// ["std", "option", "Option"].
func (p *Path) Names() []string {
	names := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		names = append(names, seg.Ident.Name())
	}
	return names
}

// Joined returns the segment identifiers joined with "::", ignoring any
// leading `::` and generic arguments.
func (p *Path) Joined() string {
	return strings.Join(p.Names(), "::")
}

// HasArgs reports whether any segment carries generic arguments.
func (p *Path) HasArgs() bool {
	for _, seg := range p.Segments {
		if seg.Args != nil || seg.Inputs != nil {
			return true
		}
	}
	return false
}

// Last returns the final segment.
func (p *Path) Last() *PathSegment {
	return p.Segments[len(p.Segments)-1]
}

// QSelf is the `<T as Trait>` prefix of a qualified path. Position is the
// number of path segments that belong to the trait.
type QSelf struct {
	node
	Type     Type
	Position int
}

type GenericArgs struct {
	node
	Args []GenericArg
}

type GenericArg interface {
	Node
	isGenericArg()
}

type Lifetime struct {
	node
	Name string
}

type TypeArg struct {
	node
	Type Type
}

type ConstArg struct {
	node
	Expr Expr
}

// AssocType is an associated type binding such as `Item = u8`.
type AssocType struct {
	node
	Ident *syntax.Ident
	Type  Type
}

// Constraint is an associated type bound such as `Item: Clone`.
type Constraint struct {
	node
	Ident  *syntax.Ident
	Bounds []Bound
}

type Bound interface {
	Node
	isBound()
}

type TraitBound struct {
	node
	Paren        bool
	Maybe        bool
	ForLifetimes []*Lifetime
	Path         *Path
}

type PathType struct {
	node
	QSelf *QSelf
	Path  *Path
}

type RefType struct {
	node
	Lifetime *Lifetime
	Mut      bool
	Elem     Type
}

type PtrType struct {
	node
	Mut  bool
	Elem Type
}

type SliceType struct {
	node
	Elem Type
}

type ArrayType struct {
	node
	Elem Type
	Len  Expr
}

type TupleType struct {
	node
	Elems []Type
}

type ParenType struct {
	node
	Elem Type
}

type NeverType struct {
	node
}

type InferType struct {
	node
}

// TraitObject is `dyn A + B`. Dyn is false for the bare form `A + B`.
type TraitObject struct {
	node
	Dyn    bool
	Bounds []Bound
}

type ImplTrait struct {
	node
	Bounds []Bound
}

type FnArg struct {
	node
	Name *syntax.Ident
	Type Type
}

type FnType struct {
	node
	ForLifetimes []*Lifetime
	Unsafe       bool
	ABI          *syntax.Literal
	Extern       bool
	Inputs       []*FnArg
	Variadic     bool
	Output       Type
}

type MacroType struct {
	node
	Path *Path
	Body *syntax.Group
}

func (*PathType) isType()    {}
func (*RefType) isType()     {}
func (*PtrType) isType()     {}
func (*SliceType) isType()   {}
func (*ArrayType) isType()   {}
func (*TupleType) isType()   {}
func (*ParenType) isType()   {}
func (*NeverType) isType()   {}
func (*InferType) isType()   {}
func (*TraitObject) isType() {}
func (*ImplTrait) isType()   {}
func (*FnType) isType()      {}
func (*MacroType) isType()   {}

func (*Lifetime) isGenericArg()   {}
func (*TypeArg) isGenericArg()    {}
func (*ConstArg) isGenericArg()   {}
func (*AssocType) isGenericArg()  {}
func (*Constraint) isGenericArg() {}

func (*Lifetime) isBound()   {}
func (*TraitBound) isBound() {}

func (n *Path) String() string        { return sprint(n) }
func (n *PathSegment) String() string { return sprint(n) }
func (n *FnSugar) String() string     { return sprint(n) }
func (n *QSelf) String() string       { return sprint(n) }
func (n *GenericArgs) String() string { return sprint(n) }
func (n *Lifetime) String() string    { return "'" + n.Name }
func (n *TypeArg) String() string     { return sprint(n) }
func (n *ConstArg) String() string    { return sprint(n) }
func (n *AssocType) String() string   { return sprint(n) }
func (n *Constraint) String() string  { return sprint(n) }
func (n *TraitBound) String() string  { return sprint(n) }
func (n *PathType) String() string    { return sprint(n) }
func (n *RefType) String() string     { return sprint(n) }
func (n *PtrType) String() string     { return sprint(n) }
func (n *SliceType) String() string   { return sprint(n) }
func (n *ArrayType) String() string   { return sprint(n) }
func (n *TupleType) String() string   { return sprint(n) }
func (n *ParenType) String() string   { return sprint(n) }
func (n *NeverType) String() string   { return "!" }
func (n *InferType) String() string   { return "_" }
func (n *TraitObject) String() string { return sprint(n) }
func (n *ImplTrait) String() string   { return sprint(n) }
func (n *FnArg) String() string       { return sprint(n) }
func (n *FnType) String() string      { return sprint(n) }
func (n *MacroType) String() string   { return sprint(n) }
