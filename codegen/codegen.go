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

// Package codegen runs the derive engine over whole source files.
package codegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NovaliX-Dev/custom-attrs/derive"
	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// DefaultDeriveName is the derive macro that marks an item for generation.
const DefaultDeriveName = "CustomAttrs"

// OutputSuffix replaces the ".rs" extension of each source file.
const OutputSuffix = ".attrs.rs"

// Formatter rewrites generated source before it is returned.
type Formatter interface {
	Format(ctx context.Context, src []byte) ([]byte, error)
}

// Options configure Generate.
type Options struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Jobs limits how many files are processed concurrently. Defaults to
	// GOMAXPROCS.
	Jobs int

	// DeriveName defaults to DefaultDeriveName.
	DeriveName string

	// AttributeName defaults to derive.DefaultAttributeName.
	AttributeName string

	// Formatter, if set, is applied to every output without errors.
	Formatter Formatter
}

// setDefaults sets default values for unspecified options.
func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.DeriveName == "" {
		o.DeriveName = DefaultDeriveName
	}
	if o.AttributeName == "" {
		o.AttributeName = derive.DefaultAttributeName
	}
}

type Source struct {
	Path    string
	Content []byte
}

// Output is the result of generating code for one Source.
type Output struct {
	Source Source

	// Path is the file name of the generated code, without a directory.
	Path string

	// Content is nil if there were errors or the source had no items
	// deriving the macro.
	Content []byte

	// Items is the number of items that derive the macro.
	Items int

	Errors   []*Diagnostic
	Warnings []*Diagnostic
}

// Err combines the errors of the output, or returns nil if there were none.
func (out *Output) Err() error {
	var err error
	for _, diag := range out.Errors {
		err = multierr.Append(err, fmt.Errorf("%s: %s", out.Source.Path, diag))
	}
	return err
}

// OutputPath returns the name of the file generated for the source at path.
func OutputPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".rs") + OutputSuffix
}

// Generate derives accessors for every marked item of every source. The
// outputs are in the same order as sources. The returned error combines
// the errors of all outputs; outputs are returned even if it is non-nil,
// unless ctx was cancelled.
func Generate(ctx context.Context, sources []Source, opts Options) ([]*Output, error) {
	opts.setDefaults()
	g := &generator{opts: opts}

	outputs := make([]*Output, len(sources))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Jobs)
	for ii, src := range sources {
		eg.Go(func() error {
			out, err := g.generate(ctx, src)
			if err != nil {
				return err
			}
			outputs[ii] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var err error
	for _, out := range outputs {
		err = multierr.Append(err, out.Err())
	}
	return outputs, err
}

type generator struct {
	opts Options
}

func (g *generator) generate(ctx context.Context, src Source) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := g.opts.Logger.With(zap.String("path", src.Path))
	out := &Output{
		Source: src,
		Path:   OutputPath(src.Path),
	}

	file, err := syntax.Parse(src.Content, syntax.WithDerive(g.opts.DeriveName))
	if err != nil {
		log.Debug("parse failed", zap.Error(err))
		out.Errors = append(out.Errors, errorDiagnostic(err))
		return out, nil
	}

	var impls []string
	for _, item := range file.Items() {
		out.Items += 1
		result := derive.Derive(item,
			derive.WithLogger(log),
			derive.WithAttributeName(g.opts.AttributeName),
		)
		for _, warning := range result.Warnings {
			out.Warnings = append(out.Warnings, warningDiagnostic(warning))
		}
		for _, err := range result.Errors {
			out.Errors = append(out.Errors, errorDiagnostic(err))
		}
		if len(result.Errors) == 0 {
			impls = append(impls, result.Output())
		}
	}
	log.Info("generated",
		zap.Int("items", out.Items),
		zap.Int("errors", len(out.Errors)),
		zap.Int("warnings", len(out.Warnings)),
	)
	if len(out.Errors) > 0 || out.Items == 0 {
		return out, nil
	}

	content := render(src.Path, impls)
	if g.opts.Formatter != nil {
		formatted, err := g.opts.Formatter.Format(ctx, content)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Warn("formatter failed", zap.Error(err))
			out.Errors = append(out.Errors, errorDiagnostic(fmt.Errorf("formatter: %w", err)))
			return out, nil
		}
		content = formatted
	}
	out.Content = content
	return out, nil
}

func render(path string, impls []string) []byte {
	var buf strings.Builder
	fmt.Fprintf(&buf, "// @generated by custom-attrs from %s. Do not edit.\n", filepath.Base(path))
	for _, impl := range impls {
		buf.WriteString("\n")
		buf.WriteString(impl)
	}
	return []byte(buf.String())
}

// ReadSources reads the files at paths. Every unreadable file is reported.
func ReadSources(paths []string) ([]Source, error) {
	var (
		sources []Source
		errs    error
	)
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		sources = append(sources, Source{Path: path, Content: content})
	}
	if errs != nil {
		return nil, errs
	}
	return sources, nil
}

// WriteOutputs writes every output that has content into dir, creating it
// if needed.
func WriteOutputs(dir string, outputs []*Output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	written := make(map[string]string)
	var errs error
	for _, out := range outputs {
		if out.Content == nil {
			continue
		}
		if prev, ok := written[out.Path]; ok {
			errs = multierr.Append(errs, fmt.Errorf(
				"%s and %s would both be written to %s",
				prev, out.Source.Path, out.Path,
			))
			continue
		}
		written[out.Path] = out.Source.Path
		path := filepath.Join(dir, out.Path)
		if err := os.WriteFile(path, out.Content, 0o644); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("write %s: %w", path, err))
		}
	}
	return errs
}
