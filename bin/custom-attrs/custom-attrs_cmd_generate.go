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
	"context"
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/NovaliX-Dev/custom-attrs/codegen"
	"github.com/NovaliX-Dev/custom-attrs/internal/wasmplugin"
)

type cmdGenerate struct {
	deriveFlags
	outDir     string
	pluginPath string
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [-o DIR] FILE...",
		summary: "Generate accessor implementations",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	cmd.deriveFlags.flags(flags)
	flags.StringVarP(&cmd.outDir, "output", "o", "", "Directory for generated files (default stdout, single input only)")
	flags.StringVar(&cmd.pluginPath, "format-plugin", "", "Formatter plugin (.wasm file or directory), overrides $"+wasmplugin.EnvPath)
}

func (cmd *cmdGenerate) run(ctx context.Context, env *cmdEnv, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(env.stderr, "No input files")
		return 1
	}
	if cmd.outDir == "" && len(argv) > 1 {
		fmt.Fprintln(env.stderr, "Multiple input files require an output directory (set --output=)")
		return 1
	}

	sources, err := codegen.ReadSources(argv)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	opts := cmd.options(env)
	pluginPath, err := wasmplugin.Locate(cmd.pluginPath)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	if pluginPath != "" {
		plugin, err := wasmplugin.Load(ctx, pluginPath, wasmplugin.Options{
			Logger: opts.Logger,
		})
		if err != nil {
			fmt.Fprintf(env.stderr, "%s: %v\n", pluginPath, err)
			return 1
		}
		defer plugin.Close(ctx)
		opts.Formatter = plugin
	}

	outputs, err := codegen.Generate(ctx, sources, opts)
	if outputs == nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	report(env, outputs)
	if err != nil {
		return 1
	}

	if cmd.outDir == "" {
		if _, err := env.stdout.Write(outputs[0].Content); err != nil {
			fmt.Fprintln(env.stderr, err)
			return 1
		}
		return 0
	}
	if err := codegen.WriteOutputs(cmd.outDir, outputs); err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	env.log().Info("wrote outputs", zap.String("dir", cmd.outDir), zap.Int("files", len(outputs)))
	return 0
}
