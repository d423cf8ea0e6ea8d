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

package testutil

import (
	"fmt"
	"testing"
)

func TestTrimLines(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"\n\t\ta\n\t\t  b\n\t", "a\n  b"},
		{"  \n\n    x {\n        y\n    }\n  \t \n", "x {\n    y\n}"},
		{"a\n\n b", "a\n\n b"},
		{" \n\t\n", ""},
	}
	for ii, test := range tests {
		t.Run(fmt.Sprintf("expect_ok/%d", ii), func(t *testing.T) {
			ExpectEq(t, test.want, TrimLines(test.text))
		})
	}
}
