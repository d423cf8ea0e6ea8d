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
	"slices"
	"strings"
	"unicode"

	"github.com/NovaliX-Dev/custom-attrs/expr"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

const (
	configDoc      = "doc"
	configFunction = "function"
)

// configBlock is one `#[...]` list of directives preceding a declaration.
type configBlock struct {
	pound      *syntax.Punct
	directives []*OptionalAssignment[expr.Expr]
}

func parseConfigBlocks(c *syntax.Cursor) ([]*configBlock, error) {
	var blocks []*configBlock
	for c.PeekPunct("#") {
		pound := c.Next().(*syntax.Punct)
		bracket, ok := c.EatGroup(syntax.Bracket)
		if !ok {
			return nil, errExpectedConfigBlock(c.Span())
		}
		directives, err := parseList(syntax.GroupCursor(bracket), parseDirective)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, &configBlock{
			pound:      pound,
			directives: directives,
		})
	}
	return blocks, nil
}

func parseDirective(c *syntax.Cursor) (*OptionalAssignment[expr.Expr], error) {
	return parseOptionalAssignment(c, scanExpr)
}

// Config holds the documentation and accessor name of one attribute.
type Config struct {
	docs     []string
	function *syntax.Literal
	name     string
}

// Doc is the documentation text. Each `doc` directive is one line.
func (cfg *Config) Doc() string {
	return strings.Join(cfg.docs, "\n")
}

func (cfg *Config) HasDoc() bool {
	return len(cfg.docs) > 0
}

// Function returns the configured accessor name, if any.
func (cfg *Config) Function() (string, bool) {
	if cfg.function == nil {
		return "", false
	}
	return cfg.name, true
}

// FunctionSpan is the span of the configured accessor name literal.
func (cfg *Config) FunctionSpan() syntax.Span {
	if cfg.function == nil {
		return syntax.Span{}
	}
	return cfg.function.Span()
}

func newConfig(d *diagnostics, blocks []*configBlock) *Config {
	cfg := &Config{}
	for _, block := range blocks {
		for _, dir := range block.directives {
			cfg.apply(d, dir)
		}
	}
	return cfg
}

func (cfg *Config) apply(d *diagnostics, dir *OptionalAssignment[expr.Expr]) {
	switch dir.PathString() {
	case configDoc:
		if _, value, ok := stringDirective(d, dir, configDoc); ok {
			cfg.docs = append(cfg.docs, value)
		}
	case configFunction:
		lit, value, ok := stringDirective(d, dir, configFunction)
		if !ok {
			return
		}
		if cfg.function != nil {
			d.err(errConfigAlreadySet(configFunction, dir.Span(), cfg.function.Span()))
			return
		}
		if value == "" {
			d.err(errEmptyFunctionName(lit.Span()))
			return
		}
		if !isFunctionName(value) {
			d.err(errInvalidFunctionName(value, lit.Span()))
			return
		}
		cfg.function = lit
		cfg.name = value
	default:
		d.err(errUnknownConfig(dir.PathSpan()))
	}
}

// stringDirective checks that dir has the form `name = "string"`.
func stringDirective(d *diagnostics, dir *OptionalAssignment[expr.Expr], name string) (*syntax.Literal, string, bool) {
	if !dir.HasValue() {
		d.err(errExpectedConfigValue(name, dir.PathSpan()))
		return nil, "", false
	}
	lit, ok := dir.Value.(*expr.Lit)
	if !ok {
		d.err(errExpectedLiteral(dir.Value.Span()))
		return nil, "", false
	}
	if lit.Token.Kind() != syntax.LitStr {
		d.err(errExpectedStringLiteral(lit.Span()))
		return nil, "", false
	}
	value, err := lit.Token.StrValue()
	if err != nil {
		d.err(err)
		return nil, "", false
	}
	return lit.Token, value, true
}

var reservedFunctionNames = []string{"_", "self", "Self", "super", "fn", "crate"}

func isFunctionName(name string) bool {
	if name == "" {
		return false
	}
	for ii, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if ii > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	if syntax.IsKeyword(name) {
		return false
	}
	return !slices.Contains(reservedFunctionNames, name)
}
