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

package syntax

import (
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and column. Columns count characters, not
// bytes.
type Position struct {
	Line   int
	Column int
}

// SourceMap converts byte offsets into line and column positions.
type SourceMap struct {
	src   []byte
	lines []uint32
}

func NewSourceMap(src []byte) *SourceMap {
	lines := []uint32{0}
	for ii, c := range src {
		if c == '\n' {
			lines = append(lines, uint32(ii+1))
		}
	}
	return &SourceMap{src: src, lines: lines}
}

// Position returns the position of the byte at offset. Offsets past the
// end of the source are clamped.
func (m *SourceMap) Position(offset uint32) Position {
	offset = min(offset, uint32(len(m.src)))
	line := sort.Search(len(m.lines), func(ii int) bool {
		return m.lines[ii] > offset
	}) - 1
	start := m.lines[line]
	return Position{
		Line:   line + 1,
		Column: utf8.RuneCount(m.src[start:offset]) + 1,
	}
}

// LineText returns the text of a 1-based line without its line terminator.
func (m *SourceMap) LineText(line int) string {
	if line < 1 || line > len(m.lines) {
		return ""
	}
	start := m.lines[line-1]
	end := uint32(len(m.src))
	if line < len(m.lines) {
		end = m.lines[line] - 1
	}
	if end > start && m.src[end-1] == '\r' {
		end -= 1
	}
	return string(m.src[start:end])
}

func (m *SourceMap) LineCount() int {
	return len(m.lines)
}
