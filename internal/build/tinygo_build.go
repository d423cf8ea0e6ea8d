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

// Command build compiles the formatter plugin with TinyGo. It is run by
// `go generate` in internal/wasmplugin.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

var (
	tinygo  = flag.String("tinygo", "tinygo", "TinyGo binary, looked up in $PATH if not a path")
	output  = flag.String("output", "", "Output path of the .wasm file")
	target  = flag.String("target", "wasm-unknown", "TinyGo target")
	chdir   = flag.String("chdir", "", "Directory to run TinyGo in")
	wasmOpt = flag.String("wasm-opt", "", "wasm-opt binary, if not in $PATH")
)

func main() {
	flag.Parse()
	if *output == "" || flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: build -output=PATH [flags] PACKAGE\n")
		os.Exit(2)
	}
	pwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	tinygoPath, err := exec.LookPath(*tinygo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "TinyGo not found: %v\n", err)
		os.Exit(1)
	}

	tinygoArgs := []string{"build"}
	tinygoArgs = append(tinygoArgs, "-o="+filepath.Join(pwd, *output))
	tinygoArgs = append(tinygoArgs, "-target="+*target)
	tinygoArgs = append(tinygoArgs, "-no-debug")
	tinygoArgs = append(tinygoArgs, flag.Args()...)

	cmd := exec.Command(tinygoPath, tinygoArgs...)
	cmd.Env = os.Environ()
	if *wasmOpt != "" {
		cmd.Env = append(cmd.Env, "WASMOPT="+filepath.Join(pwd, *wasmOpt))
	}
	cmd.Dir = filepath.Join(pwd, *chdir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
