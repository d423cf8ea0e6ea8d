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

package codegen

import (
	"errors"
	"fmt"

	"github.com/NovaliX-Dev/custom-attrs/derive"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// Diagnostic is an error or warning from any stage of generation, located
// by a byte span in its source file.
type Diagnostic struct {
	Severity Severity
	Code     uint32
	Message  string
	Span     syntax.Span
	Notes    []Note
}

type Note struct {
	Message string
	Span    syntax.Span
}

// String renders the diagnostic as "E3040: message", or as the bare
// message if it has no code.
func (d *Diagnostic) String() string {
	if d.Code == 0 {
		return d.Message
	}
	prefix := "E"
	if d.Severity == SeverityWarning {
		prefix = "W"
	}
	return fmt.Sprintf("%s%d: %s", prefix, d.Code, d.Message)
}

type located interface {
	Code() uint32
	Message() string
	Span() syntax.Span
}

// errorDiagnostic converts an error from the syntax, expr, or derive
// packages. Other errors keep their text and have code 0.
func errorDiagnostic(err error) *Diagnostic {
	var derr *derive.Error
	if errors.As(err, &derr) {
		diag := &Diagnostic{
			Severity: SeverityError,
			Code:     derr.Code(),
			Message:  derr.Message(),
			Span:     derr.Span(),
		}
		for _, note := range derr.Notes() {
			diag.Notes = append(diag.Notes, Note{
				Message: note.Message(),
				Span:    note.Span(),
			})
		}
		return diag
	}
	if loc, ok := err.(located); ok {
		return &Diagnostic{
			Severity: SeverityError,
			Code:     loc.Code(),
			Message:  loc.Message(),
			Span:     loc.Span(),
		}
	}
	return &Diagnostic{
		Severity: SeverityError,
		Message:  err.Error(),
	}
}

func warningDiagnostic(w *derive.Warning) *Diagnostic {
	return &Diagnostic{
		Severity: SeverityWarning,
		Code:     w.Code(),
		Message:  w.Message(),
		Span:     w.Span(),
	}
}
