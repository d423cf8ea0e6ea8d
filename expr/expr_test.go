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

package expr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/NovaliX-Dev/custom-attrs/expr"
	"github.com/NovaliX-Dev/custom-attrs/internal/testutil"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

func parseExpr(t *testing.T, src string) (expr.Expr, error) {
	t.Helper()
	stream := testutil.Lex(t, src)
	return expr.ParseExpr(stream, syntax.NewSpan(uint32(len(src)), 0))
}

func parseType(t *testing.T, src string) (expr.Type, error) {
	t.Helper()
	stream := testutil.Lex(t, src)
	return expr.ParseType(stream, syntax.NewSpan(uint32(len(src)), 0))
}

var exprRoundTrips = []string{
	"a + b * c",
	"(a + b) * c",
	"-x",
	"!done",
	"*ptr",
	"&mut self.value",
	"&&x",
	"self.0",
	"self.0.1",
	"foo(1, 2)",
	"x.len()",
	"x.collect::<Vec<u8>>()",
	"a[0]",
	"x?",
	"x?.y",
	"fut.await",
	"x as u8",
	"a..b",
	"..",
	"..=5",
	"()",
	"(1,)",
	"(1, \"two\")",
	"[1, 2, 3]",
	"[0; 4]",
	"[]",
	"Point { x: 1, y }",
	"Point { x: 1, ..Default::default() }",
	"Tuple { 0: a }",
	"Unit {}",
	"vec![1, 2]",
	"<T as Trait>::NAME",
	"<T>::new()",
	"Vec::<u8>::new()",
	"::std::option::Option::Some(5)",
	"if a { 1 } else if b { 2 } else { 3 }",
	"match x { _ => 0 }",
	"|x| x + 1",
	"|| 5",
	"move || value",
	"|a: u8| -> u8 { a }",
	"'outer: loop {}",
	"while running {}",
	"for x in xs {}",
	"unsafe { f() }",
	"async move {}",
	"return x",
	"break",
	"continue",
	"a = b",
	"a += 1",
	"a == b && c != d",
	"x << 2",
	"a || b",
	"a | b",
	"true",
	"'c'",
	"1.5e3",
	"crate::CONST",
	"#[allow(unused)] { x }",
	"#[a] #[b] x + 1",
}

func TestExprRoundTrip(t *testing.T) {
	for ii, src := range exprRoundTrips {
		t.Run(fmt.Sprintf("expect_ok/%d", ii), func(t *testing.T) {
			e, err := parseExpr(t, src)
			testutil.AssertNoError(t, err)
			testutil.ExpectEq(t, src, e.String())
		})
	}
}

func TestExprPrecedence(t *testing.T) {
	e, err := parseExpr(t, "a + b * c")
	testutil.AssertNoError(t, err)
	sum, ok := e.(*expr.Binary)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "+", sum.Op)
	testutil.ExpectEq(t, "b * c", sum.Right.String())

	e, err = parseExpr(t, "a - b - c")
	testutil.AssertNoError(t, err)
	diff := e.(*expr.Binary)
	testutil.ExpectEq(t, "a - b", diff.Left.String())
	testutil.ExpectEq(t, "c", diff.Right.String())

	e, err = parseExpr(t, "a = b = c")
	testutil.AssertNoError(t, err)
	assign := e.(*expr.Binary)
	testutil.ExpectEq(t, "a", assign.Left.String())
	testutil.ExpectEq(t, "b = c", assign.Right.String())

	e, err = parseExpr(t, "1 + 2 as u8")
	testutil.AssertNoError(t, err)
	cast, ok := e.(*expr.Binary).Right.(*expr.Cast)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "u8", cast.Type.String())

	e, err = parseExpr(t, "-a.b()")
	testutil.AssertNoError(t, err)
	neg := e.(*expr.Unary)
	_, ok = neg.Expr.(*expr.MethodCall)
	testutil.ExpectTrue(t, ok)

	e, err = parseExpr(t, "a..b + 1")
	testutil.AssertNoError(t, err)
	rng := e.(*expr.Range)
	testutil.ExpectEq(t, "b + 1", rng.End.String())
}

func TestExprTupleIndex(t *testing.T) {
	src := "self.0.1"
	e, err := parseExpr(t, src)
	testutil.AssertNoError(t, err)

	outer := e.(*expr.Field)
	testutil.ExpectEq(t, "1", outer.Member.Name)
	testutil.ExpectEq(t, "1", testutil.SpanText([]byte(src), outer.Member.Span()))
	inner := outer.Base.(*expr.Field)
	testutil.ExpectEq(t, "0", inner.Member.Name)
	testutil.ExpectEq(t, "0", testutil.SpanText([]byte(src), inner.Member.Span()))
	testutil.ExpectEq(t, "self.0", testutil.SpanText([]byte(src), inner.Span()))
	testutil.ExpectEq(t, src, testutil.SpanText([]byte(src), outer.Span()))
}

func TestExprSpans(t *testing.T) {
	src := "foo(a, b).bar + [1; 2]"
	e, err := parseExpr(t, src)
	testutil.AssertNoError(t, err)
	sum := e.(*expr.Binary)
	testutil.ExpectEq(t, src, testutil.SpanText([]byte(src), sum.Span()))
	testutil.ExpectEq(t, "foo(a, b).bar", testutil.SpanText([]byte(src), sum.Left.Span()))
	testutil.ExpectEq(t, "[1; 2]", testutil.SpanText([]byte(src), sum.Right.Span()))
}

func TestExprAttributes(t *testing.T) {
	src := "#[allow(unused)] #[cfg(test)] a.b + 1"
	e, err := parseExpr(t, src)
	testutil.AssertNoError(t, err)
	sum := e.(*expr.Binary)
	attributed, ok := sum.Left.(*expr.Attributed)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, 2, len(attributed.Attrs))
	testutil.ExpectEq(t, "[cfg(test)]", syntax.TokenStream{attributed.Attrs[1]}.String())
	testutil.ExpectEq(t, "a.b", attributed.Expr.String())
	testutil.ExpectEq(t, "#[allow(unused)] #[cfg(test)] a.b", testutil.SpanText([]byte(src), attributed.Span()))
}

func TestExprMacroAndPath(t *testing.T) {
	e, err := parseExpr(t, "format!(\"{}\", x)")
	testutil.AssertNoError(t, err)
	mac, ok := e.(*expr.Macro)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "format", mac.Path.Joined())

	e, err = parseExpr(t, "std::option::Option::None")
	testutil.AssertNoError(t, err)
	path := e.(*expr.PathExpr)
	testutil.ExpectSliceEq(t, []string{"std", "option", "Option", "None"}, path.Path.Names())
	testutil.ExpectFalse(t, path.Path.Global)
	testutil.ExpectFalse(t, path.Path.HasArgs())

	e, err = parseExpr(t, "<Vec<u8> as Default>::default")
	testutil.AssertNoError(t, err)
	path = e.(*expr.PathExpr)
	testutil.ExpectEq(t, 1, path.QSelf.Position)
	testutil.ExpectEq(t, "Vec<u8>", path.QSelf.Type.String())
}

type errorTest struct {
	src  string
	code uint32
	span string
}

var exprErrorTests = []errorTest{
	{"", 5000, "0:0"},
	{"1 +", 5000, "3:0"},
	{"(1 2)", 5003, "3:1"},
	{"x.", 5008, "2:0"},
	{"let", 5000, "0:3"},
	{"a b", 5002, "2:1"},
	{"Point { 0 }", 5003, "10:1"},
	{"Point { \"x\": 1 }", 5004, "8:3"},
	{"if x", 5003, "4:0"},
	{"x.foo::<u8>", 5003, "11:0"},
	{"|x", 5003, "2:0"},
}

func TestExprErrors(t *testing.T) {
	for ii, tt := range exprErrorTests {
		t.Run(fmt.Sprintf("expect_err/%d", ii), func(t *testing.T) {
			_, err := parseExpr(t, tt.src)
			testutil.AssertError(t, err)
			var exprErr *expr.Error
			testutil.AssertTrue(t, errors.As(err, &exprErr))
			testutil.ExpectEq(t, tt.code, exprErr.Code())
			span := exprErr.Span()
			testutil.ExpectEq(t, tt.span, fmt.Sprintf("%d:%d", span.Start(), span.Len()))
		})
	}
}

var typeRoundTrips = []string{
	"u8",
	"Vec<u8>",
	"Vec<Vec<u8>>",
	"HashMap<K, V>",
	"std::collections::HashMap<String, Vec<u8>>",
	"&str",
	"&'a mut T",
	"&'static [u8]",
	"*const u8",
	"*mut T",
	"[u8]",
	"[u8; 4]",
	"[u8; N * 2]",
	"(u8, String)",
	"(u8,)",
	"()",
	"(T)",
	"!",
	"_",
	"dyn Fn(u8) -> bool + Send",
	"Box<dyn Error + Send + Sync + 'static>",
	"impl Iterator<Item = u8>",
	"impl Trait<Assoc: Clone>",
	"Option<&'static str>",
	"<T as Iterator>::Item",
	"<T>::Output",
	"T::Output",
	"fn(u8) -> u8",
	"fn()",
	"unsafe extern \"C\" fn(a: u8, ...)",
	"for<'a> fn(&'a u8)",
	"for<'a> Fn(&'a u8)",
	"Foo<{ N + 1 }>",
	"Foo<3, -1>",
	"Send + Sync",
	"dyn ?Sized",
	"crate::Thing",
	"::core::option::Option<T>",
	"FnOnce() -> !",
	"mac!(x)",
}

func TestTypeRoundTrip(t *testing.T) {
	for ii, src := range typeRoundTrips {
		t.Run(fmt.Sprintf("expect_ok/%d", ii), func(t *testing.T) {
			ty, err := parseType(t, src)
			testutil.AssertNoError(t, err)
			testutil.ExpectEq(t, src, ty.String())
		})
	}
}

func TestTypeStructure(t *testing.T) {
	ty, err := parseType(t, "Option<Vec<u8>>")
	testutil.AssertNoError(t, err)
	path := ty.(*expr.PathType)
	last := path.Path.Last()
	testutil.ExpectEq(t, "Option", last.Ident.Name())
	testutil.ExpectEq(t, 1, len(last.Args.Args))
	arg, ok := last.Args.Args[0].(*expr.TypeArg)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "Vec<u8>", arg.Type.String())

	ty, err = parseType(t, "&'a mut T")
	testutil.AssertNoError(t, err)
	ref := ty.(*expr.RefType)
	testutil.ExpectEq(t, "a", ref.Lifetime.Name)
	testutil.ExpectTrue(t, ref.Mut)
}

var typeErrorTests = []errorTest{
	{"", 5001, "0:0"},
	{"&", 5001, "1:0"},
	{"u8 u8", 5002, "3:2"},
	{"*u8", 5001, "1:2"},
	{"let", 5001, "0:3"},
	{"Vec<u8", 5003, "6:0"},
	{"[u8; ]", 5000, "5:1"},
	{"dyn <T as A>::B", 5007, "4:1"},
	{"for<'a> <T as A>::B", 5009, "8:8"},
}

func TestTypeErrors(t *testing.T) {
	for ii, tt := range typeErrorTests {
		t.Run(fmt.Sprintf("expect_err/%d", ii), func(t *testing.T) {
			_, err := parseType(t, tt.src)
			testutil.AssertError(t, err)
			var exprErr *expr.Error
			testutil.AssertTrue(t, errors.As(err, &exprErr))
			testutil.ExpectEq(t, tt.code, exprErr.Code())
			span := exprErr.Span()
			testutil.ExpectEq(t, tt.span, fmt.Sprintf("%d:%d", span.Start(), span.Len()))
		})
	}
}

func TestGenerics(t *testing.T) {
	item := testutil.ParseItem(t, `
enum E<'a: 'b, 'b, T: Clone + ?Sized = u8, const N: usize = 4>
where
    T: Copy,
    'a: 'b,
    for<'c> &'c T: Debug,
{
    A,
}`)
	generics, err := expr.ParseGenerics(item.Generics())
	testutil.AssertNoError(t, err)

	testutil.ExpectEq(t, 4, len(generics.Params))
	testutil.ExpectEq(t, expr.ParamLifetime, generics.Params[0].Kind)
	testutil.ExpectEq(t, expr.ParamType, generics.Params[2].Kind)
	testutil.ExpectEq(t, expr.ParamConst, generics.Params[3].Kind)
	testutil.ExpectEq(t, "T: Clone + ?Sized = u8", generics.Params[2].String())
	testutil.ExpectEq(t, "const N: usize = 4", generics.Params[3].String())

	testutil.ExpectEq(t, "<'a: 'b, 'b, T: Clone + ?Sized, const N: usize>", generics.ImplParams())
	testutil.ExpectEq(t, "<'a, 'b, T, N>", generics.TypeArgs())
	testutil.ExpectEq(t, "where T: Copy, 'a: 'b, for<'c> &'c T: Debug", generics.WhereClause())
}

func TestGenericsEmpty(t *testing.T) {
	item := testutil.ParseItem(t, "enum E { A }")
	generics, err := expr.ParseGenerics(item.Generics())
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "", generics.ImplParams())
	testutil.ExpectEq(t, "", generics.TypeArgs())
	testutil.ExpectEq(t, "", generics.WhereClause())
}

func TestGenericsAttributes(t *testing.T) {
	item := testutil.ParseItem(t, "enum E<#[may_dangle] T, const N: u8 = { 1 + 1 }> { A(T) }")
	generics, err := expr.ParseGenerics(item.Generics())
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "<T, const N: u8>", generics.ImplParams())
	testutil.ExpectEq(t, "const N: u8 = { 1 + 1 }", generics.Params[1].String())
}

func TestGenericsErrors(t *testing.T) {
	item := testutil.ParseItem(t, "enum E<1> { A }")
	_, err := expr.ParseGenerics(item.Generics())
	var exprErr *expr.Error
	testutil.AssertTrue(t, errors.As(err, &exprErr))
	testutil.ExpectEq(t, uint32(5006), exprErr.Code())

	item = testutil.ParseItem(t, "enum E<T> where T { A }")
	_, err = expr.ParseGenerics(item.Generics())
	testutil.AssertTrue(t, errors.As(err, &exprErr))
	testutil.ExpectEq(t, uint32(5003), exprErr.Code())
}
