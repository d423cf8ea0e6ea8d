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

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NovaliX-Dev/custom-attrs/codegen"
	"github.com/NovaliX-Dev/custom-attrs/derive"
)

// newLogger returns a development logger at debug level if verbose,
// otherwise a production logger at warn level.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if verbose {
		encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.DebugLevel)
		return zap.New(core, zap.Development(), zap.AddCaller())
	}
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.WarnLevel)
	return zap.New(core)
}

// deriveFlags are accepted by every command that runs the generator.
type deriveFlags struct {
	jobs          int
	deriveName    string
	attributeName string
}

func (f *deriveFlags) flags(flags *pflag.FlagSet) {
	flags.IntVarP(&f.jobs, "jobs", "j", 0, "Number of files to process concurrently (default GOMAXPROCS)")
	flags.StringVar(&f.deriveName, "derive", codegen.DefaultDeriveName, "Name of the derive macro that marks enums")
	flags.StringVar(&f.attributeName, "attribute", derive.DefaultAttributeName, "Name of the attribute holding declarations and values")
}

func (f *deriveFlags) options(env *cmdEnv) codegen.Options {
	return codegen.Options{
		Logger:        env.log(),
		Jobs:          f.jobs,
		DeriveName:    f.deriveName,
		AttributeName: f.attributeName,
	}
}

// report prints the diagnostics of every output and a summary line if
// there were any errors.
func report(env *cmdEnv, outputs []*codegen.Output) {
	errorCount := 0
	for _, out := range outputs {
		if err := codegen.WriteReport(env.stderr, out); err != nil {
			env.log().Warn("writing diagnostics", zap.Error(err))
		}
		errorCount += len(out.Errors)
	}
	switch errorCount {
	case 0:
	case 1:
		fmt.Fprintln(env.stderr, "1 error")
	default:
		fmt.Fprintf(env.stderr, "%d errors\n", errorCount)
	}
}
