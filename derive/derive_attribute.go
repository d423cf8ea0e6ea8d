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
	"github.com/NovaliX-Dev/custom-attrs/expr"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

const accessorPrefix = "get_"

// Attribute is a declared attribute together with its value on each
// variant.
type Attribute struct {
	Name    *syntax.Ident
	Vis     syntax.Visibility
	Type    expr.Type
	Default expr.Expr
	Config  *Config

	// inner is T when Type is `Option<T>`, and nil otherwise.
	inner  expr.Type
	values []*AttributeValue
}

// AttributeValue is the value of one attribute on one variant.
type AttributeValue struct {
	Variant *syntax.Variant
	Value   expr.Expr
	Span    syntax.Span

	// Optional is set when the attribute is `Option<T>`, so that a bare
	// value is wrapped in `Some`.
	Optional bool
	Refs     []*ReferenceList

	// Bindings are the keys of the variant fields used by Value.
	Bindings []string
}

func newAttribute(decl *Declaration, cfg *Config, variants int) *Attribute {
	attr := &Attribute{
		Name:    decl.Name,
		Vis:     decl.Vis,
		Type:    decl.Type,
		Default: decl.Default,
		Config:  cfg,
		values:  make([]*AttributeValue, variants),
	}
	attr.inner, _ = classifyOptional(decl.Type)
	return attr
}

func (attr *Attribute) IsOptional() bool {
	return attr.inner != nil
}

// Value returns the value set for the variant at index, or nil.
func (attr *Attribute) Value(index int) *AttributeValue {
	return attr.values[index]
}

func (attr *Attribute) set(index int, value *AttributeValue) error {
	if first := attr.values[index]; first != nil {
		return errValueAlreadySet(attr.Name.Name(), value.Span, first.Span)
	}
	value.Optional = attr.IsOptional()
	attr.values[index] = value
	return nil
}

// check reports every variant left without a value by a required
// attribute that has no default.
func (attr *Attribute) check(variants []*syntax.Variant) []error {
	if attr.IsOptional() || attr.Default != nil {
		return nil
	}
	var errs []error
	for ii, variant := range variants {
		if attr.values[ii] == nil {
			errs = append(errs, errValueNotSet(attr.Name.Name(), variant.Name().Span()))
		}
	}
	return errs
}

// isSet reports whether any variant has a value.
func (attr *Attribute) isSet() bool {
	for _, value := range attr.values {
		if value != nil {
			return true
		}
	}
	return false
}

func (attr *Attribute) FunctionName() string {
	if name, ok := attr.Config.Function(); ok {
		return name
	}
	return accessorPrefix + attr.Name.Unraw()
}

func (attr *Attribute) hasCustomName() bool {
	_, ok := attr.Config.Function()
	return ok
}

// functionSpan is where the accessor name comes from: the configured name,
// or the attribute name.
func (attr *Attribute) functionSpan() syntax.Span {
	if attr.hasCustomName() {
		return attr.Config.FunctionSpan()
	}
	return attr.Name.Span()
}

func (attr *Attribute) ReturnType() string {
	return attr.Type.String()
}

// wrap renders e as a return value, adding `Some(...)` for optional
// attributes unless e is already `Some(x)` or `None`.
func (attr *Attribute) wrap(e expr.Expr) string {
	if attr.IsOptional() && !isAlreadyWrapped(e) {
		return "Some(" + e.String() + ")"
	}
	return e.String()
}

// Fallback is the expression returned for variants without a value.
func (attr *Attribute) Fallback() string {
	switch {
	case attr.Default != nil:
		return attr.wrap(attr.Default)
	case attr.IsOptional():
		return "None"
	default:
		return "unreachable!()"
	}
}
