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

type strToken struct {
	kind    string
	content string
}

func tok(kind, content string) strToken {
	return strToken{kind: kind, content: content}
}

var tokenTests = []struct {
	source string
	tokens []strToken
}{
	{"", nil},
	{" \t\n", []strToken{tok("SPACE", " \t"), tok("NEWLINE", "\n")}},
	{"a\r\nb", []strToken{tok("IDENT", "a"), tok("NEWLINE", "\r\n"), tok("IDENT", "b")}},
	{"r#type _x", []strToken{tok("IDENT", "r#type"), tok("SPACE", " "), tok("IDENT", "_x")}},
	{"// note\n", []strToken{tok("COMMENT", "// note"), tok("NEWLINE", "\n")}},
	{"/// doc", []strToken{tok("DOC_COMMENT", "/// doc")}},
	{"//// not doc", []strToken{tok("COMMENT", "//// not doc")}},
	{"//! inner", []strToken{tok("INNER_DOC_COMMENT", "//! inner")}},
	{"/* a /* b */ c */", []strToken{tok("COMMENT", "/* a /* b */ c */")}},
	{"/** doc */", []strToken{tok("DOC_COMMENT", "/** doc */")}},
	{"/**/", []strToken{tok("COMMENT", "/**/")}},
	{"::<>", []strToken{tok("PUNCT", ":"), tok("PUNCT", ":"), tok("PUNCT", "<"), tok("PUNCT", ">")}},
	{"{[()]}", []strToken{
		tok("OPEN_CURL", "{"), tok("OPEN_SQUARE", "["), tok("OPEN_PAREN", "("),
		tok("CLOSE_PAREN", ")"), tok("CLOSE_SQUARE", "]"), tok("CLOSE_CURL", "}"),
	}},
	{"0 1_000 0xFF 0o17 0b10 5usize", []strToken{
		tok("INT_LIT", "0"), tok("SPACE", " "),
		tok("INT_LIT", "1_000"), tok("SPACE", " "),
		tok("INT_LIT", "0xFF"), tok("SPACE", " "),
		tok("INT_LIT", "0o17"), tok("SPACE", " "),
		tok("INT_LIT", "0b10"), tok("SPACE", " "),
		tok("INT_LIT", "5usize"),
	}},
	{"1.5 2e10 3.0f32 4.", []strToken{
		tok("FLOAT_LIT", "1.5"), tok("SPACE", " "),
		tok("FLOAT_LIT", "2e10"), tok("SPACE", " "),
		tok("FLOAT_LIT", "3.0f32"), tok("SPACE", " "),
		tok("FLOAT_LIT", "4."),
	}},
	{"1..2", []strToken{tok("INT_LIT", "1"), tok("PUNCT", "."), tok("PUNCT", "."), tok("INT_LIT", "2")}},
	{"x.0.foo", []strToken{
		tok("IDENT", "x"), tok("PUNCT", "."), tok("INT_LIT", "0"),
		tok("PUNCT", "."), tok("IDENT", "foo"),
	}},
	{"x.0.1", []strToken{tok("IDENT", "x"), tok("PUNCT", "."), tok("FLOAT_LIT", "0.1")}},
	{`"a\"b"`, []strToken{tok("STR_LIT", `"a\"b"`)}},
	{`r"a\b" r#"a"b"#`, []strToken{
		tok("RAW_STR_LIT", `r"a\b"`), tok("SPACE", " "),
		tok("RAW_STR_LIT", `r#"a"b"#`),
	}},
	{`b"ab" br"ab" c"ab"`, []strToken{
		tok("BYTE_STR_LIT", `b"ab"`), tok("SPACE", " "),
		tok("RAW_BYTE_STR_LIT", `br"ab"`), tok("SPACE", " "),
		tok("C_STR_LIT", `c"ab"`),
	}},
	{`'a' '\n' '\u{1F600}' b'x'`, []strToken{
		tok("CHAR_LIT", "'a'"), tok("SPACE", " "),
		tok("CHAR_LIT", `'\n'`), tok("SPACE", " "),
		tok("CHAR_LIT", `'\u{1F600}'`), tok("SPACE", " "),
		tok("BYTE_LIT", "b'x'"),
	}},
	{"&'a str", []strToken{tok("PUNCT", "&"), tok("LIFETIME", "'a"), tok("SPACE", " "), tok("IDENT", "str")}},
	{"'static", []strToken{tok("LIFETIME", "'static")}},
	{"日本", []strToken{tok("IDENT", "日本")}},
}

func TestTokens(t *testing.T) {
	for ii, test := range tokenTests {
		t.Run(fmt.Sprintf("expect_ok/%d", ii), func(t *testing.T) {
			testExpectOK(t, test.source, test.tokens)
		})
	}
}

func testExpectOK(t *testing.T, src string, want []strToken) {
	t.Logf("source: %q", src)

	tokens, err := syntax.NewTokens([]byte(src))
	testutil.AssertNoError(t, err)

	var got []strToken
	for {
		var token syntax.Token
		testutil.AssertNoError(t, tokens.Next(&token))
		if token.Kind == syntax.T_EOF {
			break
		}
		got = append(got, strToken{
			kind:    token.Kind.String(),
			content: string(src[:token.Len]),
		})
		src = src[token.Len:]
	}

	testutil.ExpectSliceEq(t, want, got)
}

var tokenErrorTests = []struct {
	source string
	code   uint32
	span   syntax.Span
}{
	{"a\xffb", 1001, syntax.NewSpan(1, 1)},
	{"a ` b", 1002, syntax.NewSpan(2, 1)},
	{"a \x01", 1003, syntax.NewSpan(2, 1)},
	{"/* a /* b */", 1004, syntax.NewSpan(0, 12)},
	{"0b12", 1005, syntax.NewSpan(0, 4)},
	{"0x", 1005, syntax.NewSpan(0, 2)},
	{`"abc`, 1006, syntax.NewSpan(0, 4)},
	{`r#"abc"`, 1006, syntax.NewSpan(0, 7)},
	{"''", 1007, syntax.NewSpan(0, 2)},
	{"r#", 1008, syntax.NewSpan(0, 2)},
}

func TestTokenErrors(t *testing.T) {
	for ii, test := range tokenErrorTests {
		t.Run(fmt.Sprintf("expect_err/%d", ii), func(t *testing.T) {
			t.Logf("source: %q", test.source)
			err := lexAll(test.source)
			testutil.AssertError(t, err)

			lexErr, ok := err.(*syntax.Error)
			if !ok {
				t.Fatalf("Expected *syntax.Error, got: %T", err)
			}
			testutil.ExpectEq(t, test.code, lexErr.Code())
			testutil.ExpectEq(t, test.span, lexErr.Span())
			testutil.ExpectMatch(t, fmt.Sprintf("^E%d: ", test.code), lexErr.Error())
		})
	}
}

func lexAll(src string) error {
	tokens, err := syntax.NewTokens([]byte(src))
	if err != nil {
		return err
	}
	for {
		var token syntax.Token
		if err := tokens.Next(&token); err != nil {
			return err
		}
		if token.Kind == syntax.T_EOF {
			return nil
		}
	}
}
