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
	"slices"
	"strconv"
	"strings"

	"github.com/NovaliX-Dev/custom-attrs/expr"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

const indentUnit = "    "

type emitter struct {
	buf    strings.Builder
	indent int
}

func (e *emitter) line(s string) {
	if s != "" {
		e.buf.WriteString(strings.Repeat(indentUnit, e.indent))
	}
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *emitter) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *emitter) impl(item *syntax.Item, generics *expr.Generics, attrs []*Attribute) {
	header := fmt.Sprintf("impl%s %s%s", generics.ImplParams(), item.Name().Name(), generics.TypeArgs())
	if where := generics.WhereClause(); where != "" {
		header += " " + where
	}
	e.line(header + " {")
	e.indent += 1
	for ii, attr := range attrs {
		if ii > 0 {
			e.line("")
		}
		e.accessor(item.Variants(), attr)
	}
	e.indent -= 1
	e.line("}")
}

func (e *emitter) accessor(variants []*syntax.Variant, attr *Attribute) {
	if attr.Config.HasDoc() {
		for _, doc := range strings.Split(attr.Config.Doc(), "\n") {
			e.line("///" + doc)
		}
	}
	vis := ""
	if !attr.Vis.IsInherited() {
		vis = attr.Vis.String() + " "
	}
	e.linef("%sfn %s(&self) -> %s {", vis, attr.FunctionName(), attr.ReturnType())
	e.indent += 1
	for ii, variant := range variants {
		value := attr.Value(ii)
		if value == nil {
			continue
		}
		e.linef("if let %s = self {", variantPattern(variant, value.Bindings))
		e.indent += 1
		e.linef("return %s;", attr.wrap(value.Value))
		e.indent -= 1
		e.line("}")
	}
	e.line(attr.Fallback())
	e.indent -= 1
	e.line("}")
}

// variantPattern renders a pattern matching variant that binds only the
// given fields. Positional fields are bound as `_N`.
func variantPattern(variant *syntax.Variant, bindings []string) string {
	name := "Self::" + variant.Name().Name()
	fields := variant.Fields()
	switch fields.Kind() {
	case syntax.FieldsPositional:
		last := -1
		for _, key := range bindings {
			if index, err := strconv.Atoi(key); err == nil && index > last {
				last = index
			}
		}
		if last < 0 {
			return name + "(..)"
		}
		parts := make([]string, 0, last+2)
		for ii := 0; ii <= last; ii++ {
			key := strconv.Itoa(ii)
			if slices.Contains(bindings, key) {
				parts = append(parts, "_"+key)
			} else {
				parts = append(parts, "_")
			}
		}
		if last+1 < fields.Len() {
			parts = append(parts, "..")
		}
		return name + "(" + strings.Join(parts, ", ") + ")"
	case syntax.FieldsNamed:
		var parts []string
		for _, field := range fields.Fields() {
			if slices.Contains(bindings, field.Key()) {
				parts = append(parts, field.Name().Name())
			}
		}
		if len(parts) < fields.Len() {
			parts = append(parts, "..")
		}
		return name + " { " + strings.Join(parts, ", ") + " }"
	}
	return name
}
