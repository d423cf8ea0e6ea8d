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

	"github.com/NovaliX-Dev/custom-attrs/internal/testutil"
)

func TestResolveReferences(t *testing.T) {
	tests := []struct {
		src    string
		want   string
		fields []string
	}{
		{"1 + 2", "1 + 2", nil},
		{"#self.a", "a", []string{"a"}},
		{"#self.0", "_0", []string{"0"}},
		{"*#self.0 + #self.1", "*_0 + _1", []string{"0", "1"}},
		{"#self.a + #self.a", "a + a", []string{"a"}},
		{"#self.0.b", "_0.b", []string{"0"}},
		{"#self.list[*#self.index]", "list[*index]", []string{"list", "index"}},
		{"foo(#self.x, { #self.y })", "foo(x, { y })", []string{"x", "y"}},
		{"#self.r#type", "r#type", []string{"type"}},
		{"#[allow(unused)] x", "#[allow(unused)] x", nil},
		{"#[cfg(#self.a)] x", "#[cfg(a)] x", []string{"a"}},
	}
	for ii, test := range tests {
		t.Run(fmt.Sprintf("expect_ok/%d", ii), func(t *testing.T) {
			var d diagnostics
			out, lists, ok := resolveReferences(&d, testutil.Lex(t, test.src))
			testutil.AssertTrue(t, ok)
			testutil.ExpectEq(t, 0, len(d.errors))
			testutil.ExpectEq(t, test.want, out.String())

			var fields []string
			for _, list := range lists {
				testutil.ExpectEq(t, referenceRoot, list.Root.Name)
				for _, ref := range list.Fields {
					fields = append(fields, ref.Name)
				}
			}
			testutil.ExpectSliceEq(t, test.fields, fields)
		})
	}
}

func TestResolveReferencesSpans(t *testing.T) {
	src := "#self.a + #self.a * #self.b"
	var d diagnostics
	_, lists, ok := resolveReferences(&d, testutil.Lex(t, src))
	testutil.AssertTrue(t, ok)
	testutil.AssertTrue(t, len(lists) == 1)

	list := lists[0]
	testutil.ExpectEq(t, 3, len(list.Root.Spans))
	a, ok := list.Field("a")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, 2, len(a.Spans))
	testutil.ExpectEq(t, "1:7", testutil.At([]byte(src), a.Spans[0]))
	testutil.ExpectEq(t, "1:17", testutil.At([]byte(src), a.Spans[1]))
	_, ok = list.Field("c")
	testutil.ExpectFalse(t, ok)
}

func TestResolveReferencesErrors(t *testing.T) {
	tests := []struct {
		src  string
		code uint32
		at   string
	}{
		{"#", 3031, "1:1"},
		{"#+", 3031, "1:2"},
		{"#self", 3032, "1:2"},
		{"#self x", 3032, "1:7"},
		{"#self.", 3035, "1:6"},
		{"#other.a", 3030, "1:2"},
		{"#self.\"a\"", 3033, "1:7"},
		{"#self.1.5", 3033, "1:7"},
		{"#self.0u8", 3036, "1:7"},
		{"#self.0x1", 3036, "1:7"},
		{"#self.1usize", 3036, "1:7"},
		{"#self.+", 3034, "1:7"},
		{"(#self)", 3032, "1:3"},
		{"[1, #self.]", 3035, "1:10"},
	}
	for ii, test := range tests {
		t.Run(fmt.Sprintf("expect_err/%d", ii), func(t *testing.T) {
			var d diagnostics
			_, _, ok := resolveReferences(&d, testutil.Lex(t, test.src))
			testutil.ExpectFalse(t, ok)
			testutil.AssertTrue(t, len(d.errors) == 1)
			err := d.errors[0]
			testutil.ExpectEq(t, test.code, err.Code())
			testutil.ExpectEq(t, test.at, testutil.At([]byte(test.src), err.Span()))
		})
	}
}
