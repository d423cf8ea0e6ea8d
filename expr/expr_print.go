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
	"fmt"
	"strings"

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// printer renders nodes as canonical source text. Blocks and other bodies
// kept as tokens are printed through the token printer.
type printer struct {
	buf strings.Builder
}

func sprint(n Node) string {
	var pr printer
	pr.node(n)
	return pr.buf.String()
}

func (pr *printer) write(s string) {
	pr.buf.WriteString(s)
}

func (pr *printer) tokens(ts syntax.TokenStream) {
	pr.write(ts.String())
}

func (pr *printer) group(group *syntax.Group) {
	pr.tokens(syntax.TokenStream{group})
}

func (pr *printer) node(n Node) {
	switch n := n.(type) {
	case Expr:
		pr.expr(n)
	case Type:
		pr.ty(n)
	case *Path:
		pr.path(nil, n, false)
	case *PathSegment:
		pr.segment(n, false)
	case *FnSugar:
		pr.fnSugar(n)
	case *QSelf:
		pr.write("<")
		pr.ty(n.Type)
		pr.write(">")
	case *GenericArgs:
		pr.genericArgs(n)
	case GenericArg:
		pr.genericArg(n)
	case Bound:
		pr.bound(n)
	case *FieldValue:
		pr.fieldValue(n)
	case *FnArg:
		pr.fnArg(n)
	case *Member:
		pr.write(n.Name)
	default:
		panic(fmt.Sprintf("unknown node type %T", n))
	}
}

func (pr *printer) exprs(exprs []Expr) {
	for ii, e := range exprs {
		if ii > 0 {
			pr.write(", ")
		}
		pr.expr(e)
	}
}

func (pr *printer) expr(e Expr) {
	switch e := e.(type) {
	case *Lit:
		pr.write(e.Token.Raw())
	case *PathExpr:
		pr.path(e.QSelf, e.Path, true)
	case *Macro:
		pr.path(nil, e.Path, true)
		pr.write("!")
		pr.group(e.Body)
	case *Call:
		pr.expr(e.Func)
		pr.write("(")
		pr.exprs(e.Args)
		pr.write(")")
	case *MethodCall:
		pr.expr(e.Receiver)
		pr.write(".")
		pr.write(e.Method.Name())
		if e.Turbofish != nil {
			pr.write("::")
			pr.genericArgs(e.Turbofish)
		}
		pr.write("(")
		pr.exprs(e.Args)
		pr.write(")")
	case *Field:
		pr.expr(e.Base)
		pr.write(".")
		pr.write(e.Member.Name)
	case *Index:
		pr.expr(e.Base)
		pr.write("[")
		pr.expr(e.Index)
		pr.write("]")
	case *Try:
		pr.expr(e.Expr)
		pr.write("?")
	case *Await:
		pr.expr(e.Expr)
		pr.write(".await")
	case *Cast:
		pr.expr(e.Expr)
		pr.write(" as ")
		pr.ty(e.Type)
	case *Unary:
		pr.write(e.Op)
		if e.Op == "&mut" {
			pr.write(" ")
		}
		pr.expr(e.Expr)
	case *Binary:
		pr.expr(e.Left)
		pr.write(" " + e.Op + " ")
		pr.expr(e.Right)
	case *Range:
		if e.Start != nil {
			pr.expr(e.Start)
		}
		pr.write("..")
		if e.Inclusive {
			pr.write("=")
		}
		if e.End != nil {
			pr.expr(e.End)
		}
	case *Paren:
		pr.write("(")
		pr.expr(e.Expr)
		pr.write(")")
	case *Attributed:
		for _, attr := range e.Attrs {
			pr.write("#")
			pr.group(attr)
			pr.write(" ")
		}
		pr.expr(e.Expr)
	case *Tuple:
		pr.write("(")
		pr.exprs(e.Elems)
		if len(e.Elems) == 1 {
			pr.write(",")
		}
		pr.write(")")
	case *Array:
		pr.write("[")
		pr.exprs(e.Elems)
		pr.write("]")
	case *Repeat:
		pr.write("[")
		pr.expr(e.Elem)
		pr.write("; ")
		pr.expr(e.Len)
		pr.write("]")
	case *Struct:
		pr.path(e.QSelf, e.Path, true)
		if len(e.Fields) == 0 && !e.HasRest {
			pr.write(" {}")
			return
		}
		pr.write(" { ")
		for ii, field := range e.Fields {
			if ii > 0 {
				pr.write(", ")
			}
			pr.fieldValue(field)
		}
		if e.HasRest {
			if len(e.Fields) > 0 {
				pr.write(", ")
			}
			pr.write("..")
			if e.Rest != nil {
				pr.expr(e.Rest)
			}
		}
		pr.write(" }")
	case *Block:
		pr.label(e.Label)
		for _, prefix := range e.Prefix {
			pr.write(prefix + " ")
		}
		pr.group(e.Body)
	case *If:
		pr.write("if ")
		pr.tokens(e.Cond)
		pr.write(" ")
		pr.group(e.Then)
		if e.Else != nil {
			pr.write(" else ")
			pr.expr(e.Else)
		}
	case *Match:
		pr.write("match ")
		pr.tokens(e.Scrutinee)
		pr.write(" ")
		pr.group(e.Arms)
	case *Loop:
		pr.label(e.Label)
		pr.write(e.Keyword)
		if len(e.Header) > 0 {
			pr.write(" ")
			pr.tokens(e.Header)
		}
		pr.write(" ")
		pr.group(e.Body)
	case *Closure:
		for _, prefix := range e.Prefix {
			pr.write(prefix + " ")
		}
		pr.write("|")
		pr.tokens(e.Params)
		pr.write("| ")
		if e.Output != nil {
			pr.write("-> ")
			pr.ty(e.Output)
			pr.write(" ")
		}
		pr.expr(e.Body)
	case *Jump:
		pr.write(e.Keyword)
		if e.Label != nil {
			pr.write(" " + e.Label.String())
		}
		if e.Value != nil {
			pr.write(" ")
			pr.expr(e.Value)
		}
	default:
		panic(fmt.Sprintf("unknown expression type %T", e))
	}
}

func (pr *printer) label(label *Lifetime) {
	if label != nil {
		pr.write(label.String() + ": ")
	}
}

func (pr *printer) fieldValue(field *FieldValue) {
	pr.write(field.Member.Name)
	if field.Value != nil {
		pr.write(": ")
		pr.expr(field.Value)
	}
}

// path prints a possibly qualified path. Expression paths need a turbofish
// before generic arguments.
func (pr *printer) path(qself *QSelf, path *Path, exprStyle bool) {
	segments := path.Segments
	if qself != nil {
		pr.write("<")
		pr.ty(qself.Type)
		if qself.Position > 0 {
			pr.write(" as ")
			if path.Global {
				pr.write("::")
			}
			for ii, seg := range segments[:qself.Position] {
				if ii > 0 {
					pr.write("::")
				}
				pr.segment(seg, false)
			}
		}
		pr.write(">")
		for _, seg := range segments[qself.Position:] {
			pr.write("::")
			pr.segment(seg, exprStyle)
		}
		return
	}
	if path.Global {
		pr.write("::")
	}
	for ii, seg := range segments {
		if ii > 0 {
			pr.write("::")
		}
		pr.segment(seg, exprStyle)
	}
}

func (pr *printer) segment(seg *PathSegment, exprStyle bool) {
	pr.write(seg.Ident.Name())
	if seg.Args != nil {
		if exprStyle {
			pr.write("::")
		}
		pr.genericArgs(seg.Args)
	}
	if seg.Inputs != nil {
		pr.fnSugar(seg.Inputs)
	}
}

func (pr *printer) fnSugar(sugar *FnSugar) {
	pr.write("(")
	pr.types(sugar.Inputs)
	pr.write(")")
	if sugar.Output != nil {
		pr.write(" -> ")
		pr.ty(sugar.Output)
	}
}

func (pr *printer) genericArgs(args *GenericArgs) {
	pr.write("<")
	for ii, arg := range args.Args {
		if ii > 0 {
			pr.write(", ")
		}
		pr.genericArg(arg)
	}
	pr.write(">")
}

func (pr *printer) genericArg(arg GenericArg) {
	switch arg := arg.(type) {
	case *Lifetime:
		pr.write(arg.String())
	case *TypeArg:
		pr.ty(arg.Type)
	case *ConstArg:
		pr.expr(arg.Expr)
	case *AssocType:
		pr.write(arg.Ident.Name() + " = ")
		pr.ty(arg.Type)
	case *Constraint:
		pr.write(arg.Ident.Name() + ": ")
		pr.bounds(arg.Bounds)
	}
}

func (pr *printer) bounds(bounds []Bound) {
	for ii, bound := range bounds {
		if ii > 0 {
			pr.write(" + ")
		}
		pr.bound(bound)
	}
}

func (pr *printer) bound(bound Bound) {
	switch bound := bound.(type) {
	case *Lifetime:
		pr.write(bound.String())
	case *TraitBound:
		if bound.Paren {
			pr.write("(")
		}
		if bound.Maybe {
			pr.write("?")
		}
		pr.forLifetimes(bound.ForLifetimes)
		pr.path(nil, bound.Path, false)
		if bound.Paren {
			pr.write(")")
		}
	}
}

func (pr *printer) forLifetimes(lifetimes []*Lifetime) {
	if len(lifetimes) == 0 {
		return
	}
	pr.write("for<")
	for ii, lifetime := range lifetimes {
		if ii > 0 {
			pr.write(", ")
		}
		pr.write(lifetime.String())
	}
	pr.write("> ")
}

func (pr *printer) types(types []Type) {
	for ii, ty := range types {
		if ii > 0 {
			pr.write(", ")
		}
		pr.ty(ty)
	}
}

func (pr *printer) ty(ty Type) {
	switch ty := ty.(type) {
	case *PathType:
		pr.path(ty.QSelf, ty.Path, false)
	case *RefType:
		pr.write("&")
		if ty.Lifetime != nil {
			pr.write(ty.Lifetime.String() + " ")
		}
		if ty.Mut {
			pr.write("mut ")
		}
		pr.ty(ty.Elem)
	case *PtrType:
		if ty.Mut {
			pr.write("*mut ")
		} else {
			pr.write("*const ")
		}
		pr.ty(ty.Elem)
	case *SliceType:
		pr.write("[")
		pr.ty(ty.Elem)
		pr.write("]")
	case *ArrayType:
		pr.write("[")
		pr.ty(ty.Elem)
		pr.write("; ")
		pr.expr(ty.Len)
		pr.write("]")
	case *TupleType:
		pr.write("(")
		pr.types(ty.Elems)
		if len(ty.Elems) == 1 {
			pr.write(",")
		}
		pr.write(")")
	case *ParenType:
		pr.write("(")
		pr.ty(ty.Elem)
		pr.write(")")
	case *NeverType:
		pr.write("!")
	case *InferType:
		pr.write("_")
	case *TraitObject:
		if ty.Dyn {
			pr.write("dyn ")
		}
		pr.bounds(ty.Bounds)
	case *ImplTrait:
		pr.write("impl ")
		pr.bounds(ty.Bounds)
	case *FnType:
		pr.forLifetimes(ty.ForLifetimes)
		if ty.Unsafe {
			pr.write("unsafe ")
		}
		if ty.Extern {
			pr.write("extern ")
			if ty.ABI != nil {
				pr.write(ty.ABI.Raw() + " ")
			}
		}
		pr.write("fn(")
		for ii, arg := range ty.Inputs {
			if ii > 0 {
				pr.write(", ")
			}
			pr.fnArg(arg)
		}
		if ty.Variadic {
			if len(ty.Inputs) > 0 {
				pr.write(", ")
			}
			pr.write("...")
		}
		pr.write(")")
		if ty.Output != nil {
			pr.write(" -> ")
			pr.ty(ty.Output)
		}
	case *MacroType:
		pr.path(nil, ty.Path, false)
		pr.write("!")
		pr.group(ty.Body)
	default:
		panic(fmt.Sprintf("unknown type %T", ty))
	}
}

func (pr *printer) fnArg(arg *FnArg) {
	if arg.Name != nil {
		pr.write(arg.Name.Name() + ": ")
	}
	pr.ty(arg.Type)
}
