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
	"fmt"
	"testing"

	"github.com/NovaliX-Dev/custom-attrs/expr"
	"github.com/NovaliX-Dev/custom-attrs/internal/testutil"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

func parseType(t *testing.T, src string) expr.Type {
	t.Helper()
	ty, err := expr.ParseType(testutil.Lex(t, src), syntax.NewSpan(uint32(len(src)), 0))
	testutil.AssertNoError(t, err)
	return ty
}

func parseExpr(t *testing.T, src string) expr.Expr {
	t.Helper()
	e, err := expr.ParseExpr(testutil.Lex(t, src), syntax.NewSpan(uint32(len(src)), 0))
	testutil.AssertNoError(t, err)
	return e
}

func TestClassifyOptional(t *testing.T) {
	tests := []struct {
		src   string
		inner string
	}{
		{"Option<u8>", "u8"},
		{"std::option::Option<Vec<u8>>", "Vec<u8>"},
		{"core::option::Option<&'a str>", "&'a str"},
		{"::std::option::Option<u8>", "u8"},
		{"Option<(u8, u16)>", "(u8, u16)"},
	}
	for ii, test := range tests {
		t.Run(fmt.Sprintf("optional/%d", ii), func(t *testing.T) {
			inner, ok := classifyOptional(parseType(t, test.src))
			testutil.AssertTrue(t, ok)
			testutil.ExpectEq(t, test.inner, inner.String())
		})
	}

	required := []string{
		"u8",
		"Option",
		"Option<'a>",
		"Option<u8, u16>",
		"Opt<u8>",
		"std::Option<u8>",
		"option::Option<u8>",
		"<T as Trait>::Option<u8>",
		"&Option<u8>",
		"Vec<Option<u8>>",
	}
	for ii, src := range required {
		t.Run(fmt.Sprintf("required/%d", ii), func(t *testing.T) {
			_, ok := classifyOptional(parseType(t, src))
			testutil.ExpectFalse(t, ok)
		})
	}
}

func TestIsAlreadyWrapped(t *testing.T) {
	wrapped := []string{
		"Some(1)",
		"Some(a + b)",
		"std::option::Option::Some(x)",
		"core::option::Option::Some(x)",
		"None",
		"std::option::Option::None",
		"core::option::Option::None",
	}
	for ii, src := range wrapped {
		t.Run(fmt.Sprintf("wrapped/%d", ii), func(t *testing.T) {
			testutil.ExpectTrue(t, isAlreadyWrapped(parseExpr(t, src)))
		})
	}

	bare := []string{
		"1",
		"x",
		"Some",
		"Some(1, 2)",
		"Some()",
		"None::<u8>",
		"None(1)",
		"option::Option::None",
		"Option::Some(1)",
		"(None)",
		"x.Some(1)",
		"foo::Some(1)",
	}
	for ii, src := range bare {
		t.Run(fmt.Sprintf("bare/%d", ii), func(t *testing.T) {
			testutil.ExpectFalse(t, isAlreadyWrapped(parseExpr(t, src)))
		})
	}
}
