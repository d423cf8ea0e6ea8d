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
	"strconv"
	"strings"
)

// StrValue decodes a string literal, including raw strings.
func (n *Literal) StrValue() (string, error) {
	if n.kind != LitStr {
		return "", fmt.Errorf("literal %s is not a string", n.raw)
	}
	body := n.raw[:len(n.raw)-len(n.Suffix())]
	if body[0] == 'r' {
		hashes := strings.IndexByte(body, '"') - 1
		return body[2+hashes : len(body)-1-hashes], nil
	}
	value, ok := unescape(body[1 : len(body)-1])
	if !ok {
		return "", errLitInvalidEscape(n)
	}
	return value, nil
}

// Suffix returns the type suffix of the literal, such as "u8" in `1u8`.
func (n *Literal) Suffix() string {
	raw := n.raw
	switch n.kind {
	case LitStr, LitByteStr, LitCStr:
		end := strings.LastIndexByte(raw, '"')
		for end+1 < len(raw) && raw[end+1] == '#' {
			end += 1
		}
		return raw[end+1:]
	case LitChar, LitByte:
		return raw[strings.LastIndexByte(raw, '\'')+1:]
	}

	digits := raw
	if len(raw) > 2 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'o' || raw[1] == 'b') {
		hex := raw[1] == 'x'
		for ii := 2; ii < len(raw); ii++ {
			c := raw[ii]
			if (c >= '0' && c <= '9') || c == '_' {
				continue
			}
			if hex && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
				continue
			}
			return raw[ii:]
		}
		return ""
	}
	for ii := 0; ii < len(digits); ii++ {
		c := digits[ii]
		if (c >= '0' && c <= '9') || c == '_' || c == '.' {
			continue
		}
		if (c == 'e' || c == 'E') && n.kind == LitFloat {
			if ii+1 < len(digits) && (digits[ii+1] == '+' || digits[ii+1] == '-') {
				ii += 1
			}
			continue
		}
		return raw[ii:]
	}
	return ""
}

func unescape(value string) (string, bool) {
	if !strings.ContainsRune(value, '\\') && !strings.ContainsRune(value, '\r') {
		return value, true
	}

	var buf strings.Builder
	for len(value) > 0 {
		c := value[0]
		if c == '\r' && len(value) > 1 && value[1] == '\n' {
			value = value[1:]
			continue
		}
		if c != '\\' {
			buf.WriteByte(c)
			value = value[1:]
			continue
		}
		if len(value) < 2 {
			return "", false
		}
		esc := value[1]
		value = value[2:]
		switch esc {
		case '"', '\'', '\\':
			buf.WriteByte(esc)
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case '0':
			buf.WriteByte(0)
		case '\n', '\r':
			value = strings.TrimLeft(value, " \t\r\n")
		case 'x':
			if len(value) < 2 {
				return "", false
			}
			b, err := strconv.ParseUint(value[:2], 16, 8)
			if err != nil || b > 0x7F {
				return "", false
			}
			buf.WriteByte(uint8(b))
			value = value[2:]
		case 'u':
			if len(value) == 0 || value[0] != '{' {
				return "", false
			}
			end := strings.IndexByte(value, '}')
			if end < 2 || end > 8 {
				return "", false
			}
			hex := strings.ReplaceAll(value[1:end], "_", "")
			scalar, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || scalar > 0x10FFFF || (scalar >= 0xD800 && scalar <= 0xDFFF) {
				return "", false
			}
			buf.WriteRune(rune(scalar))
			value = value[end+1:]
		default:
			return "", false
		}
	}
	return buf.String(), true
}

// QuoteString renders text as a string literal.
func QuoteString(text string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, c := range text {
		switch c {
		case '\\', '"':
			buf.WriteByte('\\')
			buf.WriteRune(c)
		case '\t':
			buf.WriteString("\\t")
		case '\n':
			buf.WriteString("\\n")
		case '\r':
			buf.WriteString("\\r")
		case 0:
			buf.WriteString("\\0")
		default:
			if c < 0x20 || c == 0x7F {
				fmt.Fprintf(&buf, "\\u{%x}", c)
				continue
			}
			buf.WriteRune(c)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
