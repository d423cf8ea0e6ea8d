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
	"testing"

	"github.com/NovaliX-Dev/custom-attrs/internal/testutil"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

func parseConfig(t *testing.T, src string) (*Config, *diagnostics) {
	t.Helper()
	c := syntax.NewCursor(testutil.Lex(t, src), syntax.NewSpan(uint32(len(src)), 0))
	blocks, err := parseConfigBlocks(c)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, c.EOF())
	d := &diagnostics{}
	return newConfig(d, blocks), d
}

func TestConfigDoc(t *testing.T) {
	cfg, d := parseConfig(t, `
		/// First line.
		#[doc = "Second line.", doc = r"Third\n"]
		/** Block */
	`)
	testutil.ExpectEq(t, 0, len(d.errors))
	testutil.ExpectTrue(t, cfg.HasDoc())
	testutil.ExpectEq(t, " First line.\nSecond line.\nThird\\n\n Block ", cfg.Doc())
	_, ok := cfg.Function()
	testutil.ExpectFalse(t, ok)
}

func TestConfigFunction(t *testing.T) {
	src := `#[function = "value_of"] #[doc = "x"]`
	cfg, d := parseConfig(t, src)
	testutil.ExpectEq(t, 0, len(d.errors))
	name, ok := cfg.Function()
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, "value_of", name)
	testutil.ExpectEq(t, `"value_of"`, testutil.SpanText([]byte(src), cfg.FunctionSpan()))

	cfg, _ = parseConfig(t, `#[function = "r\u{e9}sum\u{e9}"]`)
	name, _ = cfg.Function()
	testutil.ExpectEq(t, "résumé", name)
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		src   string
		codes []uint32
	}{
		{`#[doc]`, []uint32{3010}},
		{`#[doc = 1]`, []uint32{3012}},
		{`#[doc = b"x"]`, []uint32{3012}},
		{`#[doc = concat!("a")]`, []uint32{3011}},
		{`#[function = ""]`, []uint32{3014}},
		{`#[function = "1st"]`, []uint32{3015}},
		{`#[function = "fn"]`, []uint32{3015}},
		{`#[function = "match"]`, []uint32{3015}},
		{`#[function = "_"]`, []uint32{3015}},
		{`#[function = "a", function = ""]`, []uint32{3013}},
		{`#[function = "a"] #[function = "b"] #[function = "c"]`, []uint32{3013, 3013}},
		{`#[function = "a", other, doc]`, []uint32{3016, 3010}},
	}
	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			_, d := parseConfig(t, test.src)
			var codes []uint32
			for _, err := range d.errors {
				codes = append(codes, err.Code())
			}
			testutil.ExpectSliceEq(t, test.codes, codes)
		})
	}
}

func TestIsFunctionName(t *testing.T) {
	for _, name := range []string{"a", "_a", "get_value2", "Ünïcode", "a_"} {
		testutil.ExpectTrue(t, isFunctionName(name))
	}
	for _, name := range []string{"", "2a", "a-b", "a b", "self", "Self", "super", "crate", "type", "_"} {
		testutil.ExpectFalse(t, isFunctionName(name))
	}
}
