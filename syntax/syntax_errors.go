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
	"fmt"
	"math"
	"unicode/utf8"
)

type Error struct {
	code    uint32
	message string
	span    Span
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

func (err *Error) Span() Span {
	return err.span
}

func errSourceTooLong(srcLen int) error {
	lenUint32 := uint32(math.MaxUint32)
	if uint64(srcLen) < math.MaxUint32 {
		lenUint32 = uint32(srcLen)
	}
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source file size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		span: Span{0, lenUint32},
	}
}

func errInvalidUtf8(src []byte) error {
	var off uint32
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError {
			break
		}
		off += uint32(size)
		src = src[size:]
	}
	return &Error{
		code:    1001,
		message: "Source file contains invalid UTF-8",
		span:    Span{off, 1},
	}
}

func errUnexpectedCharacter(start uint32, r rune) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Unexpected character '%s' (U+%04X)", string(r), r),
		span:    Span{start, uint32(utf8.RuneLen(r))},
	}
}

func errForbiddenControlCharacter(start uint32, c byte) error {
	return &Error{
		code:    1003,
		message: fmt.Sprintf("Forbidden control character U+%04X", c),
		span:    Span{start, 1},
	}
}

func errBlockCommentUnterminated(start, tokenLen uint32) error {
	return &Error{
		code:    1004,
		message: "Unterminated block comment",
		span:    Span{start, tokenLen},
	}
}

func errIntLitInvalid(start uint32, token []byte) error {
	return &Error{
		code:    1005,
		message: fmt.Sprintf("Invalid integer literal %q", token),
		span:    Span{start, uint32(len(token))},
	}
}

func errStrLitUnterminated(start, tokenLen uint32) error {
	return &Error{
		code:    1006,
		message: "Unterminated string literal",
		span:    Span{start, tokenLen},
	}
}

func errCharLitInvalid(start uint32, token []byte) error {
	return &Error{
		code:    1007,
		message: fmt.Sprintf("Invalid character literal %q", token),
		span:    Span{start, uint32(len(token))},
	}
}

func errRawStrLitInvalid(start, tokenLen uint32) error {
	return &Error{
		code:    1008,
		message: "Invalid raw string literal",
		span:    Span{start, tokenLen},
	}
}

func errUnexpectedCloseDelim(close byte, span Span) error {
	return &Error{
		code:    1009,
		message: fmt.Sprintf("Unexpected closing delimiter '%c'", close),
		span:    span,
	}
}

func errUnclosedDelim(open byte, span Span) error {
	return &Error{
		code:    1010,
		message: fmt.Sprintf("Unclosed delimiter '%c'", open),
		span:    span,
	}
}

func errMismatchedCloseDelim(open, close byte, span Span) error {
	return &Error{
		code:    1011,
		message: fmt.Sprintf("Mismatched closing delimiter '%c' for '%c'", close, open),
		span:    span,
	}
}

func errLitInvalidEscape(lit *Literal) error {
	return &Error{
		code:    2000,
		message: fmt.Sprintf("Invalid escape sequence in literal %s", lit.Raw()),
		span:    lit.Span(),
	}
}

func errExpectedIdent(got TokenTree, span Span) error {
	return &Error{
		code:    2001,
		message: fmt.Sprintf("Expected identifier, got %s", describe(got)),
		span:    span,
	}
}

func errExpectedPunct(want string, got TokenTree, span Span) error {
	return &Error{
		code:    2002,
		message: fmt.Sprintf("Expected '%s', got %s", want, describe(got)),
		span:    span,
	}
}

func errExpectedGroup(want Delimiter, got TokenTree, span Span) error {
	return &Error{
		code:    2003,
		message: fmt.Sprintf("Expected '%s', got %s", want.open(), describe(got)),
		span:    span,
	}
}

func errExpectedItemBody(kind ItemKind, got TokenTree, span Span) error {
	return &Error{
		code:    2004,
		message: fmt.Sprintf("Expected %s body, got %s", kind, describe(got)),
		span:    span,
	}
}

func errGenericsUnterminated(span Span) error {
	return &Error{
		code:    2005,
		message: "Unterminated generic parameter list",
		span:    span,
	}
}

func errExpectedAttrBody(got TokenTree, span Span) error {
	return &Error{
		code:    2006,
		message: fmt.Sprintf("Expected '[' after '#', got %s", describe(got)),
		span:    span,
	}
}

func errExpectedField(got TokenTree, span Span) error {
	return &Error{
		code:    2007,
		message: fmt.Sprintf("Expected field, got %s", describe(got)),
		span:    span,
	}
}

func errExpectedItem(stream TokenStream, end Span) error {
	var got TokenTree
	span := end
	if len(stream) > 0 {
		got = stream[0]
		span = got.Span()
	}
	return &Error{
		code:    2008,
		message: fmt.Sprintf("Expected enum, struct, or union, got %s", describe(got)),
		span:    span,
	}
}

// describe renders a token for use in an error message.
func describe(tt TokenTree) string {
	switch tt := tt.(type) {
	case nil:
		return "end of input"
	case *Ident:
		return fmt.Sprintf("identifier %q", tt.Name())
	case *Punct:
		return fmt.Sprintf("'%c'", tt.Char())
	case *Literal:
		return fmt.Sprintf("literal %s", tt.Raw())
	case *Group:
		return fmt.Sprintf("'%s'", tt.Delim().open())
	}
	return fmt.Sprintf("%T", tt)
}
