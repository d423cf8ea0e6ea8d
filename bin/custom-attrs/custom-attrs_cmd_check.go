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

	"github.com/NovaliX-Dev/custom-attrs/codegen"
)

type cmdCheck struct {
	deriveFlags
	denyWarnings bool
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check FILE...",
		summary: "Report diagnostics without writing output",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	cmd.deriveFlags.flags(flags)
	flags.BoolVar(&cmd.denyWarnings, "deny-warnings", false, "Exit with an error if there are warnings")
}

func (cmd *cmdCheck) run(ctx context.Context, env *cmdEnv, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(env.stderr, "No input files")
		return 1
	}
	sources, err := codegen.ReadSources(argv)
	if err != nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}

	outputs, err := codegen.Generate(ctx, sources, cmd.options(env))
	if outputs == nil {
		fmt.Fprintln(env.stderr, err)
		return 1
	}
	report(env, outputs)
	if err != nil {
		return 1
	}
	if cmd.denyWarnings {
		for _, out := range outputs {
			if len(out.Warnings) > 0 {
				return 1
			}
		}
	}
	return 0
}
