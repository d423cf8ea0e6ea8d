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

package syntax_test

import (
	"fmt"
	"testing"

	"github.com/NovaliX-Dev/custom-attrs/internal/testutil"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

const itemsSource = `use std::fmt;

/// Docs.
#[derive(Debug, CustomAttrs)]
#[attr(a: usize)]
pub enum Foo<'a, T: Clone = u8> where T: Copy {
    #[attr(a = 1)]
    A,
    B(u8, pub(crate) &'a T),
    C { x: u8, r#type: Vec<u8, Global> },
    D = 4,
}

struct Bar;

mod inner {
    #[derive(CustomAttrs)]
    enum Baz { X }
}

fn main() {}
`

func itemNames(file *syntax.File) []string {
	var names []string
	for _, item := range file.Items() {
		names = append(names, item.Name().Name())
	}
	return names
}

func TestParseItems(t *testing.T) {
	file, err := syntax.Parse([]byte(itemsSource))
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"Foo", "Bar", "Baz"}, itemNames(file))

	file, err = syntax.Parse([]byte(itemsSource), syntax.WithDerive("CustomAttrs"))
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"Foo", "Baz"}, itemNames(file))

	file, err = syntax.Parse(
		[]byte(itemsSource),
		syntax.WithDerive("CustomAttrs"),
		syntax.WithNestedModules(false),
	)
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"Foo"}, itemNames(file))
}

func TestParseEnum(t *testing.T) {
	file, err := syntax.Parse([]byte(itemsSource), syntax.WithDerive("CustomAttrs"))
	testutil.AssertNoError(t, err)
	foo := file.Items()[0]

	testutil.ExpectEq(t, syntax.ItemEnum, foo.Kind())
	testutil.ExpectEq(t, "enum", foo.Keyword().Name())
	testutil.ExpectEq(t, "pub", foo.Vis().String())
	testutil.ExpectEq(t, "'a, T: Clone = u8", foo.Generics().Params().String())
	testutil.ExpectEq(t, "T: Copy", foo.Generics().Where().String())

	attrs := foo.Attrs()
	testutil.ExpectEq(t, 3, len(attrs))
	testutil.ExpectTrue(t, attrs[0].IsNamed("doc"))
	testutil.ExpectEq(t, `= " Docs."`, attrs[0].Args().String())
	testutil.ExpectTrue(t, attrs[1].IsNamed("derive"))
	testutil.ExpectEq(t, "attr", attrs[2].PathString())
	group, ok := attrs[2].ArgsGroup()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "a: usize", group.Stream().String())

	variants := foo.Variants()
	testutil.ExpectEq(t, 4, len(variants))

	a := variants[0]
	testutil.ExpectEq(t, "A", a.Name().Name())
	testutil.ExpectEq(t, syntax.FieldsUnit, a.Fields().Kind())
	testutil.ExpectEq(t, 1, len(a.Attrs()))

	b := variants[1]
	testutil.ExpectEq(t, syntax.FieldsPositional, b.Fields().Kind())
	testutil.ExpectEq(t, 2, b.Fields().Len())
	field, ok := b.Fields().Lookup("1")
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "pub(crate)", field.Vis().String())
	testutil.ExpectEq(t, "&'a T", field.Type().String())
	testutil.ExpectTrue(t, field.Name() == nil)

	c := variants[2]
	testutil.ExpectEq(t, syntax.FieldsNamed, c.Fields().Kind())
	_, ok = c.Fields().Lookup("x")
	testutil.ExpectTrue(t, ok)
	field, ok = c.Fields().Lookup("type")
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "r#type", field.Name().Name())
	_, ok = c.Fields().Lookup("y")
	testutil.ExpectFalse(t, ok)

	d := variants[3]
	testutil.ExpectEq(t, "4", d.Discriminant().String())
}

func TestParseStructs(t *testing.T) {
	src := "struct A; struct B(u8) where u8: Copy; struct C { x: u8 } union U { a: u8 }"
	file, err := syntax.Parse([]byte(src))
	testutil.AssertNoError(t, err)

	items := file.Items()
	testutil.ExpectEq(t, 4, len(items))
	testutil.ExpectEq(t, syntax.FieldsUnit, items[0].Fields().Kind())
	testutil.ExpectEq(t, syntax.FieldsPositional, items[1].Fields().Kind())
	testutil.ExpectEq(t, "u8: Copy", items[1].Generics().Where().String())
	testutil.ExpectEq(t, syntax.FieldsNamed, items[2].Fields().Kind())
	testutil.ExpectEq(t, syntax.ItemUnion, items[3].Kind())
	testutil.ExpectEq(t, "union", items[3].Kind().String())
}

func TestParseItem(t *testing.T) {
	item := testutil.ParseItem(t, "#[derive(CustomAttrs)] enum E { A }")
	testutil.ExpectEq(t, "E", item.Name().Name())
	testutil.ExpectTrue(t, item.Derives("CustomAttrs"))
	testutil.ExpectFalse(t, item.Derives("Debug"))
}

var parseErrorTests = []struct {
	source string
	code   uint32
	span   syntax.Span
}{
	{"(]", 1011, syntax.NewSpan(1, 1)},
	{"a)", 1009, syntax.NewSpan(1, 1)},
	{"(a", 1010, syntax.NewSpan(0, 1)},
	{"enum { A }", 2001, syntax.NewSpan(5, 5)},
	{"enum Foo { A B }", 2002, syntax.NewSpan(13, 1)},
	{"struct S(u8)", 2002, syntax.NewSpan(12, 0)},
	{"enum Foo;", 2004, syntax.NewSpan(8, 1)},
	{"enum Foo<T { }", 2005, syntax.NewSpan(8, 1)},
	{"# x", 2006, syntax.NewSpan(2, 1)},
	{"struct S { a: }", 2007, syntax.NewSpan(14, 1)},
	{"fn x() {}", 2008, syntax.NewSpan(0, 2)},
}

func TestParseErrors(t *testing.T) {
	for ii, test := range parseErrorTests {
		t.Run(fmt.Sprintf("expect_err/%d", ii), func(t *testing.T) {
			t.Logf("source: %q", test.source)
			_, err := syntax.NewParseOptions().ParseItem([]byte(test.source))
			testutil.AssertError(t, err)

			parseErr, ok := err.(*syntax.Error)
			if !ok {
				t.Fatalf("Expected *syntax.Error, got: %T", err)
			}
			testutil.ExpectEq(t, test.code, parseErr.Code())
			testutil.ExpectEq(t, test.span, parseErr.Span())
		})
	}
}

func TestLexDocComments(t *testing.T) {
	stream := testutil.Lex(t, "/// hello\n//! inner\n/** block */ enum")
	testutil.ExpectEq(t, `#[doc = " hello"] #![doc = " inner"] #[doc = " block "] enum`, stream.String())
}

func TestLexSpacing(t *testing.T) {
	stream := testutil.Lex(t, "a::b")
	testutil.ExpectEq(t, 4, len(stream))
	testutil.ExpectEq(t, syntax.Joint, stream[1].(*syntax.Punct).Spacing())
	testutil.ExpectEq(t, syntax.Alone, stream[2].(*syntax.Punct).Spacing())

	stream = testutil.Lex(t, "'a")
	testutil.ExpectEq(t, 2, len(stream))
	testutil.ExpectEq(t, byte('\''), stream[0].(*syntax.Punct).Char())
	testutil.ExpectEq(t, "a", stream[1].(*syntax.Ident).Name())
}

func TestLexGroups(t *testing.T) {
	stream := testutil.Lex(t, "f(a, [b], { c })")
	testutil.ExpectEq(t, 2, len(stream))
	group := stream[1].(*syntax.Group)
	testutil.ExpectEq(t, syntax.Parenthesis, group.Delim())
	testutil.ExpectEq(t, syntax.NewSpan(1, 15), group.Span())
	testutil.ExpectEq(t, syntax.NewSpan(1, 1), group.OpenSpan())
	testutil.ExpectEq(t, syntax.NewSpan(15, 1), group.CloseSpan())
	testutil.ExpectEq(t, 5, len(group.Stream()))
}

func TestPrint(t *testing.T) {
	sources := []string{
		"a + b * c",
		"&self.field",
		"foo::bar(1, 2)",
		"vec![1, 2]",
		"if x { 1 } else { 2 }",
		"x: u8",
		"a == b",
		"-1",
		"a - 1",
		"!done",
		"#[doc]",
		"x?.y",
		"&'a str",
		"::std::option::Option::Some(5)",
		"Self::V { a, .. }",
		"pub(crate) x",
		"self.0.1",
		`"text".len()`,
	}
	for _, src := range sources {
		testutil.ExpectEq(t, src, testutil.Lex(t, src).String())
	}
}

func TestLiterals(t *testing.T) {
	strValue := func(src string) string {
		stream := testutil.Lex(t, src)
		value, err := stream[0].(*syntax.Literal).StrValue()
		testutil.AssertNoError(t, err)
		return value
	}
	testutil.ExpectEq(t, "a\nb", strValue(`"a\nb"`))
	testutil.ExpectEq(t, `x"y`, strValue(`r#"x"y"#`))
	testutil.ExpectEq(t, "A\x7f", strValue(`"\u{41}\x7F"`))
	testutil.ExpectEq(t, "ab", strValue("\"a\\\n    b\""))

	suffix := func(src string) string {
		return testutil.Lex(t, src)[0].(*syntax.Literal).Suffix()
	}
	testutil.ExpectEq(t, "usize", suffix("5usize"))
	testutil.ExpectEq(t, "u8", suffix("0xFFu8"))
	testutil.ExpectEq(t, "f64", suffix("1e5f64"))
	testutil.ExpectEq(t, "", suffix("1_000"))
	testutil.ExpectEq(t, "", suffix(`"s"`))

	testutil.ExpectEq(t, `"a\"b\n"`, syntax.QuoteString("a\"b\n"))

	lit := testutil.Lex(t, `x = "\q"`)[2].(*syntax.Literal)
	_, err := lit.StrValue()
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, uint32(2000), err.(*syntax.Error).Code())
	testutil.ExpectEq(t, syntax.NewSpan(4, 4), err.(*syntax.Error).Span())
}

func TestSplitTypes(t *testing.T) {
	parts := syntax.SplitTypes(testutil.Lex(t, "HashMap<K, V>, u8, fn() -> u8,"))
	testutil.ExpectEq(t, 3, len(parts))
	testutil.ExpectEq(t, "fn() -> u8", parts[2].String())
}

func TestSourceMap(t *testing.T) {
	m := syntax.NewSourceMap([]byte("ab\ncd\r\nef"))
	testutil.ExpectEq(t, 3, m.LineCount())
	testutil.ExpectEq(t, syntax.Position{Line: 1, Column: 1}, m.Position(0))
	testutil.ExpectEq(t, syntax.Position{Line: 2, Column: 1}, m.Position(3))
	testutil.ExpectEq(t, syntax.Position{Line: 2, Column: 2}, m.Position(4))
	testutil.ExpectEq(t, syntax.Position{Line: 3, Column: 2}, m.Position(8))
	testutil.ExpectEq(t, syntax.Position{Line: 3, Column: 3}, m.Position(100))
	testutil.ExpectEq(t, "cd", m.LineText(2))
	testutil.ExpectEq(t, "ef", m.LineText(3))
	testutil.ExpectEq(t, "", m.LineText(4))

	m = syntax.NewSourceMap([]byte("é=1"))
	testutil.ExpectEq(t, syntax.Position{Line: 1, Column: 3}, m.Position(3))
}
