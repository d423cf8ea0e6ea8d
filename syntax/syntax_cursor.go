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

// Cursor walks a token stream. At end of input, Span() reports the end span
// given at construction, usually the closing delimiter of the enclosing group.
type Cursor struct {
	stream TokenStream
	pos    int
	end    Span
}

func NewCursor(stream TokenStream, end Span) *Cursor {
	return &Cursor{stream: stream, end: end}
}

// GroupCursor returns a cursor over the contents of group.
func GroupCursor(group *Group) *Cursor {
	return NewCursor(group.stream, group.CloseSpan())
}

func (c *Cursor) EOF() bool {
	return c.pos >= len(c.stream)
}

func (c *Cursor) Peek() TokenTree {
	return c.PeekN(0)
}

func (c *Cursor) PeekN(n int) TokenTree {
	if c.pos+n >= len(c.stream) {
		return nil
	}
	return c.stream[c.pos+n]
}

func (c *Cursor) Next() TokenTree {
	if c.EOF() {
		return nil
	}
	tt := c.stream[c.pos]
	c.pos += 1
	return tt
}

// Prev returns the most recently consumed token.
func (c *Cursor) Prev() TokenTree {
	if c.pos == 0 {
		return nil
	}
	return c.stream[c.pos-1]
}

func (c *Cursor) Span() Span {
	if c.EOF() {
		return c.end
	}
	return c.stream[c.pos].Span()
}

func (c *Cursor) EndSpan() Span {
	return c.end
}

func (c *Cursor) Rest() TokenStream {
	if c.EOF() {
		return nil
	}
	return c.stream[c.pos:]
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) Reset(pos int) {
	c.pos = pos
}

// Since returns the tokens consumed after pos.
func (c *Cursor) Since(pos int) TokenStream {
	return c.stream[pos:c.pos]
}

// PeekPunct reports whether the next tokens spell op, for example "::" or
// "->". Every punct but the last must be joint.
func (c *Cursor) PeekPunct(op string) bool {
	for ii := 0; ii < len(op); ii++ {
		p, ok := c.PeekN(ii).(*Punct)
		if !ok || p.char != op[ii] {
			return false
		}
		if ii < len(op)-1 && p.spacing != Joint {
			return false
		}
	}
	return true
}

func (c *Cursor) EatPunct(op string) bool {
	if !c.PeekPunct(op) {
		return false
	}
	c.pos += len(op)
	return true
}

func (c *Cursor) PeekIdent(name string) bool {
	ident, ok := c.Peek().(*Ident)
	return ok && ident.name == name
}

func (c *Cursor) EatIdent(name string) bool {
	if !c.PeekIdent(name) {
		return false
	}
	c.pos += 1
	return true
}

func (c *Cursor) PeekGroup(delim Delimiter) (*Group, bool) {
	group, ok := c.Peek().(*Group)
	if !ok || group.delim != delim {
		return nil, false
	}
	return group, true
}

func (c *Cursor) EatGroup(delim Delimiter) (*Group, bool) {
	group, ok := c.PeekGroup(delim)
	if ok {
		c.pos += 1
	}
	return group, ok
}

// Ident consumes an identifier or returns an error naming what was found.
func (c *Cursor) Ident() (*Ident, error) {
	ident, ok := c.Peek().(*Ident)
	if !ok {
		return nil, errExpectedIdent(c.Peek(), c.Span())
	}
	c.pos += 1
	return ident, nil
}

// Expect consumes op or returns an error.
func (c *Cursor) Expect(op string) error {
	if !c.EatPunct(op) {
		return errExpectedPunct(op, c.Peek(), c.Span())
	}
	return nil
}

// SplitPunct splits ts at every sep punct. Groups are opaque, so only
// top-level separators count. A trailing separator does not produce an
// empty final element.
func SplitPunct(ts TokenStream, sep byte) []TokenStream {
	var out []TokenStream
	start := 0
	for ii, tt := range ts {
		if isPunct(tt, sep) {
			out = append(out, ts[start:ii])
			start = ii + 1
		}
	}
	if start < len(ts) {
		out = append(out, ts[start:])
	}
	return out
}

// SplitTypes is like SplitPunct(ts, ','), but ignores commas nested in
// angle brackets so that `HashMap<K, V>` stays whole.
func SplitTypes(ts TokenStream) []TokenStream {
	var out []TokenStream
	start := 0
	depth := 0
	for ii, tt := range ts {
		p, ok := tt.(*Punct)
		if !ok {
			continue
		}
		switch p.char {
		case '<':
			depth += 1
		case '>':
			if ii > 0 && isJointPunct(ts[ii-1], '-') {
				continue
			}
			if depth > 0 {
				depth -= 1
			}
		case ',':
			if depth == 0 {
				out = append(out, ts[start:ii])
				start = ii + 1
			}
		}
	}
	if start < len(ts) {
		out = append(out, ts[start:])
	}
	return out
}

func isJointPunct(tt TokenTree, c byte) bool {
	p, ok := tt.(*Punct)
	return ok && p.char == c && p.spacing == Joint
}
