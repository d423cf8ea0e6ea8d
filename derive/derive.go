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
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/NovaliX-Dev/custom-attrs/expr"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// DefaultAttributeName is the attribute used both for declarations on the
// enum and for values on its variants.
const DefaultAttributeName = "attr"

type DeriveOption interface {
	apply(*DeriveOptions)
}

type deriveOption func(*DeriveOptions)

func (f deriveOption) apply(opts *DeriveOptions) { f(opts) }

type DeriveOptions struct {
	logger   *zap.Logger
	attrName string
}

func WithLogger(logger *zap.Logger) DeriveOption {
	return deriveOption(func(opts *DeriveOptions) {
		opts.logger = logger
	})
}

// WithAttributeName changes the attribute name from "attr".
func WithAttributeName(name string) DeriveOption {
	return deriveOption(func(opts *DeriveOptions) {
		opts.attrName = name
	})
}

type DeriveResult struct {
	output string

	Errors   []*Error
	Warnings []*Warning
}

// Output is the generated `impl` block. It is empty if there were errors.
func (r *DeriveResult) Output() string {
	return r.output
}

// Err combines all errors, or returns nil if there were none.
func (r *DeriveResult) Err() error {
	var err error
	for _, e := range r.Errors {
		err = multierr.Append(err, e)
	}
	return err
}

func Derive(item *syntax.Item, opts ...DeriveOption) DeriveResult {
	return NewDeriveOptions(opts...).Derive(item)
}

func NewDeriveOptions(opts ...DeriveOption) *DeriveOptions {
	deriveOpts := &DeriveOptions{
		attrName: DefaultAttributeName,
	}
	for _, opt := range opts {
		opt.apply(deriveOpts)
	}
	if deriveOpts.logger == nil {
		deriveOpts.logger = zap.NewNop()
	}
	return deriveOpts
}

func (opts *DeriveOptions) Derive(item *syntax.Item) DeriveResult {
	dv := &deriver{
		opts:   opts,
		item:   item,
		logger: opts.logger.With(zap.String("item", item.Name().Name())),
	}
	output, ok := dv.derive()
	if !ok {
		return DeriveResult{
			Errors:   dv.errors,
			Warnings: dv.warnings,
		}
	}
	return DeriveResult{
		output:   output,
		Warnings: dv.warnings,
	}
}

type diagnostics struct {
	errors   []*Error
	warnings []*Warning
}

func (d *diagnostics) err(err error) {
	d.errors = append(d.errors, asError(err))
}

func (d *diagnostics) warn(warning *Warning) {
	d.warnings = append(d.warnings, warning)
}

func (d *diagnostics) dirty() bool {
	return len(d.errors) > 0
}

type deriver struct {
	diagnostics
	opts   *DeriveOptions
	item   *syntax.Item
	logger *zap.Logger

	generics *expr.Generics
	attrs    []*Attribute
}

func (dv *deriver) derive() (string, bool) {
	switch dv.item.Kind() {
	case syntax.ItemStruct:
		dv.err(errStructNotSupported(dv.item.Keyword().Span()))
		return "", false
	case syntax.ItemUnion:
		dv.err(errUnionNotSupported(dv.item.Keyword().Span()))
		return "", false
	}

	dv.declare()
	if dv.checkpoint("declarations") {
		return "", false
	}
	for ii, variant := range dv.item.Variants() {
		dv.assign(ii, variant)
	}
	if dv.checkpoint("values") {
		return "", false
	}
	dv.validate()
	if dv.checkpoint("validation") {
		return "", false
	}
	dv.checkFunctionNames()
	if dv.checkpoint("function names") {
		return "", false
	}

	var e emitter
	e.impl(dv.item, dv.generics, dv.attrs)
	dv.logger.Debug("derived accessors", zap.Int("attributes", len(dv.attrs)))
	return e.buf.String(), true
}

// checkpoint reports whether errors have been collected, in which case
// the derive stops after the named phase.
func (dv *deriver) checkpoint(phase string) bool {
	if !dv.dirty() {
		return false
	}
	dv.logger.Debug("derive aborted",
		zap.String("phase", phase),
		zap.Int("errors", len(dv.errors)),
	)
	return true
}

func (dv *deriver) lookup(name string) *Attribute {
	for _, attr := range dv.attrs {
		if attr.Name.Unraw() == name {
			return attr
		}
	}
	return nil
}

func (dv *deriver) declare() {
	generics, err := expr.ParseGenerics(dv.item.Generics())
	if err != nil {
		dv.err(err)
	} else {
		dv.generics = generics
	}

	variants := len(dv.item.Variants())
	for _, itemAttr := range dv.item.Attrs() {
		if !itemAttr.IsNamed(dv.opts.attrName) {
			continue
		}
		decls, err := parseDeclarations(itemAttr, dv.opts.attrName)
		if err != nil {
			dv.err(err)
			continue
		}
		for _, decl := range decls {
			if first := dv.lookup(decl.Name.Unraw()); first != nil {
				dv.err(errAttrAlreadyDeclared(decl.Name.Name(), decl.Name.Span(), first.Name.Span()))
				continue
			}
			cfg := newConfig(&dv.diagnostics, decl.Configs)
			dv.attrs = append(dv.attrs, newAttribute(decl, cfg, variants))
		}
	}
}

func parseValueAssignment(c *syntax.Cursor) (*Assignment[rawValue], error) {
	return parseAssignment(c, scanValue)
}

func (dv *deriver) assign(index int, variant *syntax.Variant) {
	for _, varAttr := range variant.Attrs() {
		if !varAttr.IsNamed(dv.opts.attrName) {
			continue
		}
		group, ok := varAttr.ArgsGroup()
		if !ok {
			span := varAttr.PathSpan()
			if args := varAttr.Args(); len(args) > 0 {
				span = args.Span()
			}
			dv.err(errExpectedAttrList(dv.opts.attrName, span))
			continue
		}
		assignments, err := parseList(syntax.GroupCursor(group), parseValueAssignment)
		if err != nil {
			dv.err(err)
			continue
		}
		for _, a := range assignments {
			dv.bind(index, variant, a)
		}
	}
}

func (dv *deriver) bind(index int, variant *syntax.Variant, a *Assignment[rawValue]) {
	tokens, refs, ok := resolveReferences(&dv.diagnostics, a.Value.Tokens)
	if !ok {
		return
	}
	value, err := parseValueExpr(rawValue{Tokens: tokens, End: a.Value.End})
	if err != nil {
		dv.err(err)
		return
	}
	attr := dv.lookup(a.Name.Unraw())
	if attr == nil {
		dv.err(errUnknownAttribute(a.Name.Span()))
		return
	}

	attrValue := &AttributeValue{
		Variant: variant,
		Value:   value,
		Span:    a.Span(),
		Refs:    refs,
	}
	fields := variant.Fields()
	for _, list := range refs {
		for _, ref := range list.Fields {
			if _, ok := fields.Lookup(ref.Name); !ok {
				for _, span := range ref.Spans {
					dv.warn(warnUnknownField(variant.Name().Name(), ref.Name, span))
				}
				continue
			}
			attrValue.Bindings = append(attrValue.Bindings, ref.Name)
		}
	}
	if err := attr.set(index, attrValue); err != nil {
		dv.err(err)
	}
}

func (dv *deriver) validate() {
	variants := dv.item.Variants()
	for _, attr := range dv.attrs {
		for _, err := range attr.check(variants) {
			dv.err(err)
		}
		if len(variants) > 0 && !attr.isSet() {
			dv.warn(warnAttributeNeverSet(attr.Name.Name(), attr.Name.Span()))
		}
	}
}

// checkFunctionNames rejects two accessors with the same name. When only
// one of the pair has a configured name, the error is reported there.
func (dv *deriver) checkFunctionNames() {
	seen := make(map[string]*Attribute, len(dv.attrs))
	for _, attr := range dv.attrs {
		name := attr.FunctionName()
		first, ok := seen[name]
		if !ok {
			seen[name] = attr
			continue
		}
		reported, other := attr, first
		if !attr.hasCustomName() && first.hasCustomName() {
			reported, other = first, attr
		}
		dv.err(errFunctionNameUsed(name, reported.functionSpan(), other.functionSpan()))
	}
}
