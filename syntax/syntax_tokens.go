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
	"unicode"
	"unicode/utf8"
)

const (
	maxSrcLen = 0x7FFFFFFF // (2**31)-1
)

type Token struct {
	Len  uint32
	Kind TokenKind
}

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_SPACE
	T_NEWLINE
	T_COMMENT
	T_DOC_COMMENT
	T_INNER_DOC_COMMENT

	T_PUNCT

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_PAREN
	T_CLOSE_PAREN
	T_OPEN_SQUARE
	T_CLOSE_SQUARE

	T_INT_LIT
	T_FLOAT_LIT
	T_STR_LIT
	T_RAW_STR_LIT
	T_BYTE_STR_LIT
	T_RAW_BYTE_STR_LIT
	T_C_STR_LIT
	T_CHAR_LIT
	T_BYTE_LIT

	T_LIFETIME
	T_IDENT
)

func (k TokenKind) String() string {
	switch k {
	case T_EOF:
		return "EOF"
	case T_SPACE:
		return "SPACE"
	case T_NEWLINE:
		return "NEWLINE"
	case T_COMMENT:
		return "COMMENT"
	case T_DOC_COMMENT:
		return "DOC_COMMENT"
	case T_INNER_DOC_COMMENT:
		return "INNER_DOC_COMMENT"
	case T_PUNCT:
		return "PUNCT"
	case T_OPEN_CURL:
		return "OPEN_CURL"
	case T_CLOSE_CURL:
		return "CLOSE_CURL"
	case T_OPEN_PAREN:
		return "OPEN_PAREN"
	case T_CLOSE_PAREN:
		return "CLOSE_PAREN"
	case T_OPEN_SQUARE:
		return "OPEN_SQUARE"
	case T_CLOSE_SQUARE:
		return "CLOSE_SQUARE"
	case T_INT_LIT:
		return "INT_LIT"
	case T_FLOAT_LIT:
		return "FLOAT_LIT"
	case T_STR_LIT:
		return "STR_LIT"
	case T_RAW_STR_LIT:
		return "RAW_STR_LIT"
	case T_BYTE_STR_LIT:
		return "BYTE_STR_LIT"
	case T_RAW_BYTE_STR_LIT:
		return "RAW_BYTE_STR_LIT"
	case T_C_STR_LIT:
		return "C_STR_LIT"
	case T_CHAR_LIT:
		return "CHAR_LIT"
	case T_BYTE_LIT:
		return "BYTE_LIT"
	case T_LIFETIME:
		return "LIFETIME"
	case T_IDENT:
		return "IDENT"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

func isPunctChar(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '^', '!', '&', '|', '=', '<', '>',
		'@', '.', ',', ';', ':', '#', '$', '?', '~':
		return true
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
		(r >= 0x80 && unicode.IsLetter(r))
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') ||
		(r >= 0x80 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)))
}

type Tokens struct {
	src    []byte
	offset uint32
}

func NewTokens(src []byte) (*Tokens, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	if !utf8.Valid(src) {
		return nil, errInvalidUtf8(src)
	}
	return &Tokens{
		src: src,
	}, nil
}

// Offset returns the byte offset of the next token.
func (t *Tokens) Offset() uint32 {
	return t.offset
}

func (t *Tokens) Next(token *Token) error {
	if len(t.src) == 0 {
		*token = Token{
			Kind: T_EOF,
		}
		return nil
	}

	c := t.src[0]
	var kind TokenKind
	switch c {
	case ' ', '\t', '\v', '\f', '\r':
		if c == '\r' && len(t.src) > 1 && t.src[1] == '\n' {
			return t.emit(token, T_NEWLINE, 2)
		}
		return t.nextSpace(token)
	case '\n':
		kind = T_NEWLINE
		goto len1
	case '{':
		kind = T_OPEN_CURL
		goto len1
	case '}':
		kind = T_CLOSE_CURL
		goto len1
	case '(':
		kind = T_OPEN_PAREN
		goto len1
	case ')':
		kind = T_CLOSE_PAREN
		goto len1
	case '[':
		kind = T_OPEN_SQUARE
		goto len1
	case ']':
		kind = T_CLOSE_SQUARE
		goto len1
	case '/':
		if len(t.src) > 1 && t.src[1] == '/' {
			return t.nextLineComment(token)
		}
		if len(t.src) > 1 && t.src[1] == '*' {
			return t.nextBlockComment(token)
		}
		kind = T_PUNCT
		goto len1
	case '"':
		return t.nextStrLit(token, T_STR_LIT, 0)
	case '\'':
		return t.nextQuote(token)
	default:
		goto big
	}

len1:
	return t.emit(token, kind, 1)

big:
	if isPunctChar(c) {
		return t.emit(token, T_PUNCT, 1)
	}

	if c >= '0' && c <= '9' {
		return t.nextNumLit(token)
	}

	switch c {
	case 'b':
		if t.peekAt(1, '"') {
			return t.nextStrLit(token, T_BYTE_STR_LIT, 1)
		}
		if t.peekAt(1, '\'') {
			return t.nextCharLit(token, T_BYTE_LIT, 1)
		}
		if t.peekAt(1, 'r') && (t.peekAt(2, '"') || t.peekAt(2, '#')) {
			return t.nextRawStrLit(token, T_RAW_BYTE_STR_LIT, 2)
		}
	case 'c':
		if t.peekAt(1, '"') {
			return t.nextStrLit(token, T_C_STR_LIT, 1)
		}
		if t.peekAt(1, 'r') && (t.peekAt(2, '"') || t.peekAt(2, '#')) {
			return t.nextRawStrLit(token, T_C_STR_LIT, 2)
		}
	case 'r':
		if t.peekAt(1, '"') {
			return t.nextRawStrLit(token, T_RAW_STR_LIT, 1)
		}
		if t.peekAt(1, '#') {
			if len(t.src) > 2 {
				r, _ := utf8.DecodeRune(t.src[2:])
				if isIdentStart(r) {
					return t.nextIdent(token, 2)
				}
			}
			return t.nextRawStrLit(token, T_RAW_STR_LIT, 1)
		}
	}

	r, runeLen := utf8.DecodeRune(t.src)
	if isIdentStart(r) {
		return t.nextIdent(token, 0)
	}
	if unicode.IsSpace(r) || r == '\u200E' || r == '\u200F' {
		return t.emit(token, T_SPACE, uint32(runeLen))
	}

	if r < 0x20 || r == 0x7F {
		return errForbiddenControlCharacter(t.offset, c)
	}
	return errUnexpectedCharacter(t.offset, r)
}

func (t *Tokens) peekAt(idx int, c byte) bool {
	return idx < len(t.src) && t.src[idx] == c
}

func (t *Tokens) emit(token *Token, kind TokenKind, tokenLen uint32) error {
	*token = Token{
		Kind: kind,
		Len:  tokenLen,
	}
	t.offset += tokenLen
	t.src = t.src[tokenLen:]
	return nil
}

func (t *Tokens) nextSpace(token *Token) error {
	src := t.src
	for len(src) > 0 {
		if c := src[0]; c == ' ' || c == '\t' || c == '\v' || c == '\f' {
			src = src[1:]
			continue
		}
		if src[0] == '\r' && (len(src) < 2 || src[1] != '\n') {
			src = src[1:]
			continue
		}
		break
	}
	return t.emit(token, T_SPACE, uint32(len(t.src)-len(src)))
}

func (t *Tokens) nextLineComment(token *Token) error {
	src := t.src
	for ii, c := range src {
		if c == '\n' {
			src = src[:ii]
			break
		}
	}
	if len(src) > 0 && src[len(src)-1] == '\r' {
		src = src[:len(src)-1]
	}

	kind := T_COMMENT
	if len(src) >= 3 && src[2] == '/' && (len(src) == 3 || src[3] != '/') {
		kind = T_DOC_COMMENT
	} else if len(src) >= 3 && src[2] == '!' {
		kind = T_INNER_DOC_COMMENT
	}
	return t.emit(token, kind, uint32(len(src)))
}

func (t *Tokens) nextBlockComment(token *Token) error {
	src := t.src
	depth := 0
	ii := 0
	for ii < len(src) {
		if src[ii] == '/' && ii+1 < len(src) && src[ii+1] == '*' {
			depth += 1
			ii += 2
			continue
		}
		if src[ii] == '*' && ii+1 < len(src) && src[ii+1] == '/' {
			depth -= 1
			ii += 2
			if depth == 0 {
				break
			}
			continue
		}
		ii += 1
	}
	if depth != 0 {
		return errBlockCommentUnterminated(t.offset, uint32(len(src)))
	}

	comment := src[:ii]
	kind := T_COMMENT
	if len(comment) > 4 && comment[2] == '*' && comment[3] != '*' {
		kind = T_DOC_COMMENT
	} else if len(comment) > 4 && comment[2] == '!' {
		kind = T_INNER_DOC_COMMENT
	}
	return t.emit(token, kind, uint32(ii))
}

// nextQuote distinguishes a lifetime ('a) from a character literal ('a').
func (t *Tokens) nextQuote(token *Token) error {
	if len(t.src) < 2 {
		return errCharLitInvalid(t.offset, t.src)
	}
	if t.src[1] == '\\' {
		return t.nextCharLit(token, T_CHAR_LIT, 0)
	}
	r, runeLen := utf8.DecodeRune(t.src[1:])
	if 1+runeLen < len(t.src) && t.src[1+runeLen] == '\'' {
		return t.nextCharLit(token, T_CHAR_LIT, 0)
	}
	if !isIdentStart(r) {
		return errCharLitInvalid(t.offset, t.src[:1+runeLen])
	}
	src := t.src[1+runeLen:]
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if !isIdentContinue(r) {
			break
		}
		src = src[size:]
	}
	return t.emit(token, T_LIFETIME, uint32(len(t.src)-len(src)))
}

func (t *Tokens) nextCharLit(token *Token, kind TokenKind, prefixLen int) error {
	src := t.src[prefixLen+1:]
	if len(src) == 0 {
		return errCharLitInvalid(t.offset, t.src)
	}
	if src[0] == '\\' {
		if len(src) < 2 {
			return errCharLitInvalid(t.offset, t.src)
		}
		if src[1] == 'u' {
			end := 2
			for end < len(src) && src[end] != '}' && src[end] != '\'' {
				end += 1
			}
			if end < len(src) && src[end] == '}' {
				end += 1
			}
			src = src[end:]
		} else if src[1] == 'x' {
			src = src[min(4, len(src)):]
		} else {
			src = src[2:]
		}
	} else {
		if src[0] == '\'' || src[0] == '\n' {
			return errCharLitInvalid(t.offset, t.src[:prefixLen+2])
		}
		_, size := utf8.DecodeRune(src)
		src = src[size:]
	}
	if len(src) == 0 || src[0] != '\'' {
		consumed := len(t.src) - len(src)
		return errCharLitInvalid(t.offset, t.src[:consumed])
	}
	src = t.literalSuffix(src[1:])
	return t.emit(token, kind, uint32(len(t.src)-len(src)))
}

func (t *Tokens) nextStrLit(token *Token, kind TokenKind, prefixLen int) error {
	escaped := false
	for ii := prefixLen + 1; ii < len(t.src); ii++ {
		c := t.src[ii]
		if escaped {
			escaped = false
			continue
		}
		if c == '"' {
			src := t.literalSuffix(t.src[ii+1:])
			return t.emit(token, kind, uint32(len(t.src)-len(src)))
		}
		escaped = c == '\\'
	}
	return errStrLitUnterminated(t.offset, uint32(len(t.src)))
}

func (t *Tokens) nextRawStrLit(token *Token, kind TokenKind, prefixLen int) error {
	src := t.src[prefixLen:]
	hashes := 0
	for hashes < len(src) && src[hashes] == '#' {
		hashes += 1
	}
	if hashes > 255 {
		return errRawStrLitInvalid(t.offset, uint32(prefixLen+hashes))
	}
	if hashes >= len(src) || src[hashes] != '"' {
		return errRawStrLitInvalid(t.offset, uint32(prefixLen+hashes))
	}
	body := src[hashes+1:]
	for ii := 0; ii < len(body); ii++ {
		if body[ii] != '"' {
			continue
		}
		closing := 0
		for closing < hashes && ii+1+closing < len(body) && body[ii+1+closing] == '#' {
			closing += 1
		}
		if closing == hashes {
			rest := t.literalSuffix(body[ii+1+hashes:])
			return t.emit(token, kind, uint32(len(t.src)-len(rest)))
		}
	}
	return errStrLitUnterminated(t.offset, uint32(len(t.src)))
}

func (t *Tokens) nextNumLit(token *Token) error {
	src := t.src
	kind := T_INT_LIT

	isDigit := func(c byte) bool { return (c >= '0' && c <= '9') || c == '_' }
	base := 10
	if src[0] == '0' && len(src) > 1 {
		switch src[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
	}

	if base != 10 {
		digits := src[2:]
		n := 0
		for n < len(digits) {
			c := digits[n]
			if isDigit(c) || (base == 16 && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F'))) {
				n += 1
				continue
			}
			break
		}
		valid := false
		for _, c := range digits[:n] {
			if c == '_' {
				continue
			}
			valid = true
			switch base {
			case 2:
				if c > '1' {
					return errIntLitInvalid(t.offset, src[:2+n])
				}
			case 8:
				if c > '7' {
					return errIntLitInvalid(t.offset, src[:2+n])
				}
			}
		}
		if !valid {
			return errIntLitInvalid(t.offset, src[:2+n])
		}
		rest := t.literalSuffix(digits[n:])
		return t.emit(token, kind, uint32(len(t.src)-len(rest)))
	}

	n := 0
	for n < len(src) && isDigit(src[n]) {
		n += 1
	}
	if n+1 < len(src) && src[n] == '.' && src[n+1] >= '0' && src[n+1] <= '9' {
		kind = T_FLOAT_LIT
		n += 1
		for n < len(src) && isDigit(src[n]) {
			n += 1
		}
	} else if n < len(src) && src[n] == '.' {
		next := byte(0)
		if n+1 < len(src) {
			next = src[n+1]
		}
		r, _ := utf8.DecodeRune(src[n+1:])
		if next != '.' && !isIdentStart(r) {
			return t.emit(token, T_FLOAT_LIT, uint32(n+1))
		}
	}
	if n < len(src) && (src[n] == 'e' || src[n] == 'E') {
		exp := n + 1
		if exp < len(src) && (src[exp] == '+' || src[exp] == '-') {
			exp += 1
		}
		if exp < len(src) && src[exp] >= '0' && src[exp] <= '9' {
			kind = T_FLOAT_LIT
			n = exp
			for n < len(src) && isDigit(src[n]) {
				n += 1
			}
		}
	}
	rest := t.literalSuffix(src[n:])
	return t.emit(token, kind, uint32(len(t.src)-len(rest)))
}

// literalSuffix skips an identifier suffix such as `u8` or `f32`.
func (t *Tokens) literalSuffix(src []byte) []byte {
	if len(src) == 0 {
		return src
	}
	r, size := utf8.DecodeRune(src)
	if !isIdentStart(r) {
		return src
	}
	src = src[size:]
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if !isIdentContinue(r) {
			break
		}
		src = src[size:]
	}
	return src
}

func (t *Tokens) nextIdent(token *Token, prefixLen int) error {
	src := t.src[prefixLen:]
	for ii, r := range string(src) {
		if ii == 0 {
			continue
		}
		if !isIdentContinue(r) {
			src = src[:ii]
			break
		}
	}
	return t.emit(token, T_IDENT, uint32(prefixLen+len(src)))
}
