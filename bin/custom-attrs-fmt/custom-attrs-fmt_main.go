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

//go:build !tinygo.wasm

package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("custom-attrs-fmt: ")

	flags := pflag.NewFlagSet("custom-attrs-fmt", pflag.ExitOnError)
	tabs := flags.Bool("tabs", false, "Indent with tabs")
	width := flags.Int("indent", 4, "Number of spaces per indentation level")
	write := flags.BoolP("write", "w", false, "Rewrite files in place instead of printing them")
	flags.Parse(os.Args[1:])

	indent := strings.Repeat(" ", *width)
	if *tabs {
		indent = "\t"
	}

	if flags.NArg() == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		out, err := format(src, indent)
		if err != nil {
			log.Fatalf("<stdin>:%v", err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatal(err)
		}
		return
	}

	failed := false
	for _, path := range flags.Args() {
		src, err := os.ReadFile(path)
		if err != nil {
			log.Print(err)
			failed = true
			continue
		}
		out, err := format(src, indent)
		if err != nil {
			log.Printf("%s:%v", path, err)
			failed = true
			continue
		}
		if !*write {
			os.Stdout.Write(out)
			continue
		}
		if bytes.Equal(src, out) {
			continue
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			log.Print(err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
