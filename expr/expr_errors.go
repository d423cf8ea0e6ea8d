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

package expr

import (
	"fmt"

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

type Error struct {
	code    uint32
	message string
	span    syntax.Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() syntax.Span {
	return err.span
}

func errExpectedExpr(got syntax.TokenTree, span syntax.Span) error {
	return &Error{
		code:    5000,
		message: fmt.Sprintf("Expected expression, got %s", describe(got)),
		span:    span,
	}
}

func errExpectedType(got syntax.TokenTree, span syntax.Span) error {
	return &Error{
		code:    5001,
		message: fmt.Sprintf("Expected type, got %s", describe(got)),
		span:    span,
	}
}

func errUnexpectedToken(got syntax.TokenTree) error {
	return &Error{
		code:    5002,
		message: fmt.Sprintf("Unexpected %s", describe(got)),
		span:    got.Span(),
	}
}

func errExpectedPunct(want string, got syntax.TokenTree, span syntax.Span) error {
	return &Error{
		code:    5003,
		message: fmt.Sprintf("Expected '%s', got %s", want, describe(got)),
		span:    span,
	}
}

func errExpectedIdent(got syntax.TokenTree, span syntax.Span) error {
	return &Error{
		code:    5004,
		message: fmt.Sprintf("Expected identifier, got %s", describe(got)),
		span:    span,
	}
}

func errExpectedLifetime(got syntax.TokenTree, span syntax.Span) error {
	return &Error{
		code:    5005,
		message: fmt.Sprintf("Expected lifetime, got %s", describe(got)),
		span:    span,
	}
}

func errExpectedGenericParam(got syntax.TokenTree, span syntax.Span) error {
	return &Error{
		code:    5006,
		message: fmt.Sprintf("Expected generic parameter, got %s", describe(got)),
		span:    span,
	}
}

func errExpectedBound(got syntax.TokenTree, span syntax.Span) error {
	return &Error{
		code:    5007,
		message: fmt.Sprintf("Expected trait or lifetime bound, got %s", describe(got)),
		span:    span,
	}
}

func errExpectedMember(got syntax.TokenTree, span syntax.Span) error {
	return &Error{
		code:    5008,
		message: fmt.Sprintf("Expected field name or method call, got %s", describe(got)),
		span:    span,
	}
}

func errQualifiedBound(span syntax.Span) error {
	return &Error{
		code:    5009,
		message: "Qualified paths are not allowed in trait bounds",
		span:    span,
	}
}

func describe(tt syntax.TokenTree) string {
	switch tt := tt.(type) {
	case nil:
		return "end of input"
	case *syntax.Ident:
		return fmt.Sprintf("identifier %q", tt.Name())
	case *syntax.Punct:
		return fmt.Sprintf("'%c'", tt.Char())
	case *syntax.Literal:
		return fmt.Sprintf("literal %s", tt.Raw())
	case *syntax.Group:
		return fmt.Sprintf("group %s", groupOpen(tt.Delim()))
	}
	return fmt.Sprintf("%T", tt)
}

func groupOpen(delim syntax.Delimiter) string {
	switch delim {
	case syntax.Parenthesis:
		return "'('"
	case syntax.Brace:
		return "'{'"
	default:
		return "'['"
	}
}
