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

	"github.com/NovaliX-Dev/custom-attrs/expr"
)

// Paths are matched by spelling only. A user type named `Option` is treated
// the same as the standard one.
var (
	optionTypePaths = []string{
		"Option",
		"std::option::Option",
		"core::option::Option",
	}
	somePaths = []string{
		"Some",
		"std::option::Option::Some",
		"core::option::Option::Some",
	}
	nonePaths = []string{
		"None",
		"std::option::Option::None",
		"core::option::Option::None",
	}
)

// classifyOptional returns T if ty is spelled `Option<T>`.
func classifyOptional(ty expr.Type) (expr.Type, bool) {
	pathType, ok := ty.(*expr.PathType)
	if !ok || pathType.QSelf != nil {
		return nil, false
	}
	if !slices.Contains(optionTypePaths, pathType.Path.Joined()) {
		return nil, false
	}
	last := pathType.Path.Last()
	if last.Args == nil || len(last.Args.Args) != 1 {
		return nil, false
	}
	arg, ok := last.Args.Args[0].(*expr.TypeArg)
	if !ok {
		return nil, false
	}
	return arg.Type, true
}

// isAlreadyWrapped reports whether e is `Some(x)` or `None`, so that an
// optional value does not get wrapped twice.
func isAlreadyWrapped(e expr.Expr) bool {
	switch e := e.(type) {
	case *expr.Call:
		fn, ok := e.Func.(*expr.PathExpr)
		if !ok || fn.QSelf != nil {
			return false
		}
		return len(e.Args) == 1 && slices.Contains(somePaths, fn.Path.Joined())
	case *expr.PathExpr:
		if e.QSelf != nil {
			return false
		}
		last := e.Path.Last()
		if last.Args != nil || last.Inputs != nil {
			return false
		}
		return slices.Contains(nonePaths, e.Path.Joined())
	}
	return false
}
