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
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// referenceRoot is the only name accepted after `#` in a value expression.
const referenceRoot = "self"

// Reference is a name and every place it was used.
type Reference struct {
	Name  string
	Spans []syntax.Span
}

// ReferenceList holds the fields used under one root, for example every
// `#self.<field>` in an expression.
type ReferenceList struct {
	Root   *Reference
	Fields []*Reference
}

// Field returns the reference to the named field, if any.
func (l *ReferenceList) Field(name string) (*Reference, bool) {
	for _, ref := range l.Fields {
		if ref.Name == name {
			return ref, true
		}
	}
	return nil, false
}

func (l *ReferenceList) add(name string, span syntax.Span) {
	if ref, ok := l.Field(name); ok {
		ref.Spans = append(ref.Spans, span)
		return
	}
	l.Fields = append(l.Fields, &Reference{Name: name, Spans: []syntax.Span{span}})
}

type referenceState uint8

const (
	stateNone referenceState = iota
	stateExpectingReference
	stateExpectingSeparator
	stateExpectingField
)

type referenceResolver struct {
	diags   *diagnostics
	lists   []*ReferenceList
	errored bool
}

// resolveReferences rewrites `#self.field` to `field` and `#self.0` to `_0`
// throughout ts, including inside nested groups. It reports false if any
// reference was malformed; the errors are added to diags.
func resolveReferences(diags *diagnostics, ts syntax.TokenStream) (syntax.TokenStream, []*ReferenceList, bool) {
	r := &referenceResolver{diags: diags}
	out := r.resolve(ts)
	if r.errored {
		return nil, nil, false
	}
	return out, r.lists, true
}

func (r *referenceResolver) err(err error) {
	r.diags.err(err)
	r.errored = true
}

func (r *referenceResolver) list(root *syntax.Ident) *ReferenceList {
	for _, list := range r.lists {
		if list.Root.Name == root.Name() {
			list.Root.Spans = append(list.Root.Spans, root.Span())
			return list
		}
	}
	list := &ReferenceList{
		Root: &Reference{Name: root.Name(), Spans: []syntax.Span{root.Span()}},
	}
	r.lists = append(r.lists, list)
	return list
}

func (r *referenceResolver) group(group *syntax.Group) *syntax.Group {
	return syntax.NewGroup(group.Delim(), r.resolve(group.Stream()), group.Span())
}

func (r *referenceResolver) resolve(ts syntax.TokenStream) syntax.TokenStream {
	out := make(syntax.TokenStream, 0, len(ts))
	state := stateNone
	lastSpan := ts.Span()
	var pound syntax.TokenTree
	var current *ReferenceList

	for _, tt := range ts {
		lastSpan = tt.Span()
		switch state {
		case stateNone:
			switch tt := tt.(type) {
			case *syntax.Group:
				out = append(out, r.group(tt))
				continue
			case *syntax.Punct:
				if tt.Char() == '#' {
					pound = tt
					state = stateExpectingReference
					continue
				}
			}
			out = append(out, tt)

		case stateExpectingReference:
			switch tt := tt.(type) {
			case *syntax.Group:
				// `#[...]` is an ordinary attribute.
				out = append(out, pound, r.group(tt))
				state = stateNone
			case *syntax.Ident:
				current = nil
				if tt.Name() == referenceRoot {
					current = r.list(tt)
				} else {
					r.err(errUnknownReference(tt.Span()))
				}
				state = stateExpectingSeparator
			default:
				r.err(errExpectedReference(tt.Span()))
				state = stateNone
			}

		case stateExpectingSeparator:
			if p, ok := tt.(*syntax.Punct); ok && p.Char() == '.' {
				state = stateExpectingField
				continue
			}
			r.err(errExpectedSeparator(tt.Span()))
			state = stateNone

		case stateExpectingField:
			state = stateNone
			switch tt := tt.(type) {
			case *syntax.Ident:
				out = append(out, tt)
				if current != nil {
					current.add(tt.Unraw(), tt.Span())
				}
			case *syntax.Literal:
				index := tt.Raw()
				if tt.Kind() != syntax.LitInt {
					r.err(errExpectedFieldOrIndex(tt.Span()))
					continue
				}
				if !isDecimal(index) {
					r.err(errExpectedDecimalIndex(tt.Span()))
					continue
				}
				out = append(out, syntax.NewIdent("_"+index, tt.Span()))
				if current != nil {
					current.add(index, tt.Span())
				}
			default:
				r.err(errExpectedFieldIdent(tt.Span()))
			}
		}
	}

	switch state {
	case stateExpectingReference:
		r.err(errExpectedReference(lastSpan))
	case stateExpectingSeparator:
		r.err(errExpectedSeparator(lastSpan))
	case stateExpectingField:
		r.err(errUnterminatedReference(lastSpan))
	}
	return out
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for ii := 0; ii < len(s); ii++ {
		if s[ii] < '0' || s[ii] > '9' {
			return false
		}
	}
	return true
}
