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

package main

import (
	"fmt"
	"testing"

	"github.com/NovaliX-Dev/custom-attrs/internal/testutil"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		src    string
		indent string
		want   string
	}{
		{
			src: `
impl Enum {
  pub fn get_a(&self) -> usize {
if let Self::Variant2 = self {   
            return 3;
        }
  8
    }
}
`,
			indent: defaultIndent,
			want: `impl Enum {
    pub fn get_a(&self) -> usize {
        if let Self::Variant2 = self {
            return 3;
        }
        8
    }
}
`,
		},
		{
			src:    "impl E {\n\n\nfn a() {}\n\n\n\nfn b() {}\n\n}\n\n",
			indent: "\t",
			want:   "impl E {\n\tfn a() {}\n\n\tfn b() {}\n}\n",
		},
		{
			src: `impl E {
/// Returns the value
/// of ` + "`a`" + `.
fn a(&self) -> &'static str {
"multi
line"
}
}`,
			indent: "  ",
			want: `impl E {
  /// Returns the value
  /// of ` + "`a`" + `.
  fn a(&self) -> &'static str {
    "multi
line"
  }
}
`,
		},
		{
			src: `fn f() {
call(
a,
b,
)
}
`,
			indent: defaultIndent,
			want: `fn f() {
    call(
        a,
        b,
    )
}
`,
		},
	}
	for ii, test := range tests {
		t.Run(fmt.Sprintf("expect_ok/%d", ii), func(t *testing.T) {
			got, err := format([]byte(test.src), test.indent)
			testutil.AssertNoError(t, err)
			testutil.ExpectNoDiff(t, test.want, string(got))

			again, err := format(got, test.indent)
			testutil.AssertNoError(t, err)
			testutil.ExpectEq(t, string(got), string(again))
		})
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"impl E {\n", "1:8: unclosed delimiter"},
		{"fn f() {\n}\n}", "3:1: unexpected closing delimiter"},
		{"fn f(] {}", "1:6: mismatched closing delimiter"},
		{"fn f() { \"open }", "1:10: E1006: Unterminated string literal"},
	}
	for ii, test := range tests {
		t.Run(fmt.Sprintf("expect_err/%d", ii), func(t *testing.T) {
			_, err := format([]byte(test.src), defaultIndent)
			testutil.AssertError(t, err)
			testutil.ExpectEq(t, test.want, err.Error())
		})
	}
}
