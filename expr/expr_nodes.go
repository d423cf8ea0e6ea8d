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

type Node interface {
	Span() syntax.Span
	String() string
}

type node struct {
	span syntax.Span
}

func (n node) Span() syntax.Span {
	return n.span
}

type Expr interface {
	Node
	isExpr()
}

// Lit is a literal token. `true` and `false` are paths.
type Lit struct {
	node
	Token *syntax.Literal
}

type PathExpr struct {
	node
	QSelf *QSelf
	Path  *Path
}

type Macro struct {
	node
	Path *Path
	Body *syntax.Group
}

type Call struct {
	node
	Func Expr
	Args []Expr
}

type MethodCall struct {
	node
	Receiver  Expr
	Method    *syntax.Ident
	Turbofish *GenericArgs
	Args      []Expr
}

// Member is a field name, or the decimal index of a tuple field.
type Member struct {
	node
	Name string
}

type Field struct {
	node
	Base   Expr
	Member *Member
}

type Index struct {
	node
	Base  Expr
	Index Expr
}

type Try struct {
	node
	Expr Expr
}

type Await struct {
	node
	Expr Expr
}

type Cast struct {
	node
	Expr Expr
	Type Type
}

// Unary covers `-x`, `!x`, `*x`, `&x` and `&mut x`.
type Unary struct {
	node
	Op   string
	Expr Expr
}

type Binary struct {
	node
	Op    string
	Left  Expr
	Right Expr
}

// Range has nil bounds when they are omitted, as in `..` or `a..`.
type Range struct {
	node
	Start     Expr
	Inclusive bool
	End       Expr
}

type Paren struct {
	node
	Expr Expr
}

// Attributed is an expression preceded by outer attributes, as in
// `#[allow(unused)] { x }`. Each of Attrs is the bracket group following
// a `#`.
type Attributed struct {
	node
	Attrs []*syntax.Group
	Expr  Expr
}

type Tuple struct {
	node
	Elems []Expr
}

type Array struct {
	node
	Elems []Expr
}

type Repeat struct {
	node
	Elem Expr
	Len  Expr
}

type FieldValue struct {
	node
	Member *Member
	// Value is nil for shorthand fields such as `S { a }`.
	Value Expr
}

type Struct struct {
	node
	QSelf  *QSelf
	Path   *Path
	Fields []*FieldValue
	Rest   Expr
	// HasRest is set for `..` with or without a base expression.
	HasRest bool
}

// Block is a brace-delimited block, kept as tokens. Prefix holds any of
// `unsafe`, `async`, `move` or `const`, and Label any `'a:` label.
type Block struct {
	node
	Label  *Lifetime
	Prefix []string
	Body   *syntax.Group
}

// If keeps its condition as tokens, since it may contain `let` patterns.
type If struct {
	node
	Cond syntax.TokenStream
	Then *syntax.Group
	Else Expr
}

type Match struct {
	node
	Scrutinee syntax.TokenStream
	Arms      *syntax.Group
}

// Loop is a `loop`, `while` or `for` expression. Header is empty for
// `loop`.
type Loop struct {
	node
	Label   *Lifetime
	Keyword string
	Header  syntax.TokenStream
	Body    *syntax.Group
}

type Closure struct {
	node
	Prefix []string
	Params syntax.TokenStream
	Output Type
	Body   Expr
}

// Jump is a `return`, `break` or `continue` expression.
type Jump struct {
	node
	Keyword string
	Label   *Lifetime
	Value   Expr
}

func (*Lit) isExpr()        {}
func (*PathExpr) isExpr()   {}
func (*Macro) isExpr()      {}
func (*Call) isExpr()       {}
func (*MethodCall) isExpr() {}
func (*Field) isExpr()      {}
func (*Index) isExpr()      {}
func (*Try) isExpr()        {}
func (*Await) isExpr()      {}
func (*Cast) isExpr()       {}
func (*Unary) isExpr()      {}
func (*Binary) isExpr()     {}
func (*Range) isExpr()      {}
func (*Paren) isExpr()      {}
func (*Attributed) isExpr() {}
func (*Tuple) isExpr()      {}
func (*Array) isExpr()      {}
func (*Repeat) isExpr()     {}
func (*Struct) isExpr()     {}
func (*Block) isExpr()      {}
func (*If) isExpr()         {}
func (*Match) isExpr()      {}
func (*Loop) isExpr()       {}
func (*Closure) isExpr()    {}
func (*Jump) isExpr()       {}

func (n *Lit) String() string        { return sprint(n) }
func (n *PathExpr) String() string   { return sprint(n) }
func (n *Macro) String() string      { return sprint(n) }
func (n *Call) String() string       { return sprint(n) }
func (n *MethodCall) String() string { return sprint(n) }
func (n *Member) String() string     { return n.Name }
func (n *Field) String() string      { return sprint(n) }
func (n *Index) String() string      { return sprint(n) }
func (n *Try) String() string        { return sprint(n) }
func (n *Await) String() string      { return sprint(n) }
func (n *Cast) String() string       { return sprint(n) }
func (n *Unary) String() string      { return sprint(n) }
func (n *Binary) String() string     { return sprint(n) }
func (n *Range) String() string      { return sprint(n) }
func (n *Paren) String() string      { return sprint(n) }
func (n *Attributed) String() string { return sprint(n) }
func (n *Tuple) String() string      { return sprint(n) }
func (n *Array) String() string      { return sprint(n) }
func (n *Repeat) String() string     { return sprint(n) }
func (n *FieldValue) String() string { return sprint(n) }
func (n *Struct) String() string     { return sprint(n) }
func (n *Block) String() string      { return sprint(n) }
func (n *If) String() string         { return sprint(n) }
func (n *Match) String() string      { return sprint(n) }
func (n *Loop) String() string       { return sprint(n) }
func (n *Closure) String() string    { return sprint(n) }
func (n *Jump) String() string       { return sprint(n) }
