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

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

type Error struct {
	code    uint32
	message string
	span    syntax.Span
	notes   []*Note
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

// Notes point at the other side of a conflict.
func (err *Error) Notes() []*Note {
	return err.notes
}

type Note struct {
	message string
	span    syntax.Span
}

func (n *Note) Message() string {
	return n.message
}

func (n *Note) Span() syntax.Span {
	return n.span
}

// diagnostic is implemented by the errors of the syntax and expr packages.
type diagnostic interface {
	Code() uint32
	Message() string
	Span() syntax.Span
}

// asError converts a syntax or expression error into a derive error,
// keeping its code.
func asError(err error) *Error {
	switch err := err.(type) {
	case *Error:
		return err
	case diagnostic:
		return &Error{
			code:    err.Code(),
			message: err.Message(),
			span:    err.Span(),
		}
	}
	panic(fmt.Sprintf("unexpected error type %T: %v", err, err))
}

// reanchor moves a syntax or expression error to span.
func reanchor(err error, span syntax.Span) *Error {
	e := asError(err)
	return &Error{
		code:    e.code,
		message: e.message,
		span:    span,
		notes:   e.notes,
	}
}

func errExpectedAttrList(name string, span syntax.Span) error {
	return &Error{
		code:    3000,
		message: fmt.Sprintf("Expected `%s(...)`.", name),
		span:    span,
	}
}

func errAttrAlreadyDeclared(name string, span, first syntax.Span) error {
	return &Error{
		code:    3001,
		message: "This attribute is already declared.",
		span:    span,
		notes: []*Note{{
			message: fmt.Sprintf("First declaration of `%s` is here.", name),
			span:    first,
		}},
	}
}

func errExpectedType(span syntax.Span) error {
	return &Error{
		code:    3002,
		message: "Expected a type.",
		span:    span,
	}
}

func errExpectedPunct(want string, span syntax.Span) error {
	return &Error{
		code:    3003,
		message: fmt.Sprintf("Expected `%s`.", want),
		span:    span,
	}
}

func errExpectedExpr(span syntax.Span) error {
	return &Error{
		code:    3004,
		message: "Expected expression.",
		span:    span,
	}
}

func errExpectedConfigBlock(span syntax.Span) error {
	return &Error{
		code:    3005,
		message: "Expected `[` after `#`.",
		span:    span,
	}
}

func errExpectedConfigValue(name string, span syntax.Span) error {
	return &Error{
		code:    3010,
		message: fmt.Sprintf("Expected `%s = ...`", name),
		span:    span,
	}
}

func errExpectedLiteral(span syntax.Span) error {
	return &Error{
		code:    3011,
		message: "Expected a literal expression.",
		span:    span,
	}
}

func errExpectedStringLiteral(span syntax.Span) error {
	return &Error{
		code:    3012,
		message: "Expected a string literal.",
		span:    span,
	}
}

func errConfigAlreadySet(name string, span, first syntax.Span) error {
	return &Error{
		code:    3013,
		message: "This config is already set.",
		span:    span,
		notes: []*Note{{
			message: fmt.Sprintf("Value for config `%s` is already set here.", name),
			span:    first,
		}},
	}
}

func errEmptyFunctionName(span syntax.Span) error {
	return &Error{
		code:    3014,
		message: "The function name must not be empty.",
		span:    span,
	}
}

func errInvalidFunctionName(name string, span syntax.Span) error {
	return &Error{
		code:    3015,
		message: fmt.Sprintf("Invalid function name `%s`.", name),
		span:    span,
	}
}

func errUnknownConfig(span syntax.Span) error {
	return &Error{
		code:    3016,
		message: "Unknown config.",
		span:    span,
	}
}

func errUnknownAttribute(span syntax.Span) error {
	return &Error{
		code:    3020,
		message: "Unknown attribute.",
		span:    span,
	}
}

func errValueAlreadySet(name string, span, first syntax.Span) error {
	return &Error{
		code:    3021,
		message: "The value is already set for this attribute.",
		span:    span,
		notes: []*Note{{
			message: fmt.Sprintf("First value of `%s` is set here.", name),
			span:    first,
		}},
	}
}

func errUnknownReference(span syntax.Span) error {
	return &Error{
		code:    3030,
		message: "Unknown reference.",
		span:    span,
	}
}

func errExpectedReference(span syntax.Span) error {
	return &Error{
		code:    3031,
		message: "Expecting reference ident or `[`.",
		span:    span,
	}
}

func errExpectedSeparator(span syntax.Span) error {
	return &Error{
		code:    3032,
		message: "Expecting `.`.",
		span:    span,
	}
}

func errExpectedFieldOrIndex(span syntax.Span) error {
	return &Error{
		code:    3033,
		message: "Expecting ident or integer.",
		span:    span,
	}
}

func errExpectedDecimalIndex(span syntax.Span) error {
	return &Error{
		code:    3036,
		message: "Expecting a decimal field index.",
		span:    span,
	}
}

func errExpectedFieldIdent(span syntax.Span) error {
	return &Error{
		code:    3034,
		message: "Expecting ident.",
		span:    span,
	}
}

func errUnterminatedReference(span syntax.Span) error {
	return &Error{
		code:    3035,
		message: "Expecting field ident.",
		span:    span,
	}
}

func errValueNotSet(name string, span syntax.Span) error {
	return &Error{
		code:    3040,
		message: fmt.Sprintf("Value not set for `%s`.", name),
		span:    span,
	}
}

func errFunctionNameUsed(name string, span, first syntax.Span) error {
	return &Error{
		code:    3050,
		message: fmt.Sprintf("The function name `%s` is already used.", name),
		span:    span,
		notes: []*Note{{
			message: fmt.Sprintf("Function `%s` is declared here.", name),
			span:    first,
		}},
	}
}

func errStructNotSupported(span syntax.Span) error {
	return &Error{
		code:    3090,
		message: "Not implemented for structs.",
		span:    span,
	}
}

func errUnionNotSupported(span syntax.Span) error {
	return &Error{
		code:    3091,
		message: "Not implemented for unions.",
		span:    span,
	}
}
