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

package wasmplugin_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"

	"github.com/NovaliX-Dev/custom-attrs/codegen"
	"github.com/NovaliX-Dev/custom-attrs/internal/wasmplugin"
)

var _ codegen.Formatter = (*wasmplugin.Plugin)(nil)

func leb(n int) []byte {
	var out []byte
	for {
		b := byte(n & 0x7F)
		n >>= 7
		if n == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func vec(items ...[]byte) []byte {
	out := leb(len(items))
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

func sized(content ...byte) []byte {
	return append(leb(len(content)), content...)
}

func section(id byte, content []byte) []byte {
	return append([]byte{id}, sized(content...)...)
}

func name(s string) []byte {
	return sized([]byte(s)...)
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// echoModule returns a plugin that formats any input as itself, and
// rejects empty input with the message "empty input".
func echoModule() []byte {
	const i32 = 0x7F
	types := vec(
		[]byte{0x60, 0x01, i32, 0x01, i32},
		[]byte{0x60, 0x03, i32, i32, i32, 0x01, i32},
	)
	funcs := vec([]byte{0x00}, []byte{0x01})
	memory := vec([]byte{0x00, 0x01})
	globals := vec([]byte{i32, 0x01, 0x41, 0x80, 0x08, 0x0B})
	exports := vec(
		cat(name("memory"), []byte{0x02, 0x00}),
		cat(name("custom_attrs_allocate"), []byte{0x00, 0x00}),
		cat(name("custom_attrs_format"), []byte{0x00, 0x01}),
	)

	// allocate(len): bump allocator starting at 1024.
	allocate := sized(
		0x00,
		0x23, 0x00,
		0x23, 0x00, 0x20, 0x00, 0x6A, 0x24, 0x00,
		0x0B,
	)

	// format(ptr, len, out_ptr_ptr)
	format := sized(
		0x01, 0x01, i32,
		// if len == 0 { *out_ptr_ptr = 16; return 1 }
		0x20, 0x01, 0x45, 0x04, 0x40,
		0x20, 0x02, 0x41, 0x10, 0x36, 0x02, 0x00,
		0x41, 0x01, 0x0F,
		0x0B,
		// out = allocate(len + 4); *out = len
		0x20, 0x01, 0x41, 0x04, 0x6A, 0x10, 0x00, 0x21, 0x03,
		0x20, 0x03, 0x20, 0x01, 0x36, 0x02, 0x00,
		// memory.copy(out + 4, ptr, len)
		0x20, 0x03, 0x41, 0x04, 0x6A,
		0x20, 0x00,
		0x20, 0x01,
		0xFC, 0x0A, 0x00, 0x00,
		// *out_ptr_ptr = out; return 0
		0x20, 0x02, 0x20, 0x03, 0x36, 0x02, 0x00,
		0x41, 0x00,
		0x0B,
	)
	code := vec(allocate, format)

	message := "empty input"
	errorData := cat(
		[]byte{0x00, 0x41, 0x10, 0x0B},
		sized(cat([]byte{byte(len(message)), 0x00, 0x00, 0x00}, []byte(message))...),
	)
	data := vec(errorData)

	return cat(
		wasmHeader,
		section(1, types),
		section(3, funcs),
		section(5, memory),
		section(6, globals),
		section(7, exports),
		section(10, code),
		section(11, data),
	)
}

func TestFormat(t *testing.T) {
	ctx := context.Background()
	plugin, err := wasmplugin.New(ctx, echoModule(), wasmplugin.Options{
		Logger: zaptest.NewLogger(t),
	})
	assert.NilError(t, err)
	defer plugin.Close(ctx)

	for _, src := range []string{"impl Enum {}\n", "fn main() {}\n", "x"} {
		got, err := plugin.Format(ctx, []byte(src))
		assert.NilError(t, err)
		assert.Equal(t, string(got), src)
	}
}

func TestFormatError(t *testing.T) {
	ctx := context.Background()
	plugin, err := wasmplugin.New(ctx, echoModule(), wasmplugin.Options{})
	assert.NilError(t, err)
	defer plugin.Close(ctx)

	_, err = plugin.Format(ctx, nil)
	var formatErr *wasmplugin.FormatError
	assert.Assert(t, errors.As(err, &formatErr))
	assert.Equal(t, formatErr.Code, uint32(1))
	assert.Equal(t, formatErr.Message, "empty input")
}

func TestNewInvalid(t *testing.T) {
	ctx := context.Background()

	_, err := wasmplugin.New(ctx, []byte("not wasm"), wasmplugin.Options{})
	assert.ErrorContains(t, err, "compile plugin")

	_, err = wasmplugin.New(ctx, wasmHeader, wasmplugin.Options{})
	assert.Error(t, err, `plugin does not export "memory"`)
}

func TestGenerateWithPlugin(t *testing.T) {
	ctx := context.Background()
	dir := fs.NewDir(t, "wasmplugin")
	defer dir.Remove()
	path := dir.Join(wasmplugin.DefaultName)
	assert.NilError(t, os.WriteFile(path, echoModule(), 0o644))

	plugin, err := wasmplugin.Load(ctx, path, wasmplugin.Options{})
	assert.NilError(t, err)
	defer plugin.Close(ctx)

	src := "#[derive(CustomAttrs)]\n#[attr(a: u8 = 1)]\nenum E { A, B }\n"
	sources := []codegen.Source{
		{Path: "one.rs", Content: []byte(src)},
		{Path: "two.rs", Content: []byte(src)},
	}
	plain, err := codegen.Generate(ctx, sources, codegen.Options{})
	assert.NilError(t, err)
	formatted, err := codegen.Generate(ctx, sources, codegen.Options{
		Jobs:      2,
		Formatter: plugin,
	})
	assert.NilError(t, err)
	for ii := range sources {
		assert.Equal(t, string(formatted[ii].Content), string(plain[ii].Content))
	}
}

func TestLocate(t *testing.T) {
	dir := fs.NewDir(t, "wasmplugin",
		fs.WithFile(wasmplugin.DefaultName, ""),
		fs.WithDir("empty"),
	)
	defer dir.Remove()
	pluginPath := dir.Join(wasmplugin.DefaultName)

	t.Run("flag", func(t *testing.T) {
		t.Setenv(wasmplugin.EnvPath, "")
		path, err := wasmplugin.Locate(pluginPath)
		assert.NilError(t, err)
		assert.Equal(t, path, pluginPath)
	})

	t.Run("directory", func(t *testing.T) {
		path, err := wasmplugin.Locate(dir.Path())
		assert.NilError(t, err)
		assert.Equal(t, path, pluginPath)

		_, err = wasmplugin.Locate(dir.Join("empty"))
		assert.ErrorContains(t, err, "not found in")
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(wasmplugin.EnvPath, dir.Path())
		path, err := wasmplugin.Locate("")
		assert.NilError(t, err)
		assert.Equal(t, path, pluginPath)
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv(wasmplugin.EnvPath, "")
		path, err := wasmplugin.Locate("")
		assert.NilError(t, err)
		assert.Equal(t, path, "")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := wasmplugin.Locate(filepath.Join(dir.Path(), "missing.wasm"))
		assert.ErrorContains(t, err, "not found")
	})
}

// TestBuiltFormatter runs the formatter built by `go generate`, if present.
func TestBuiltFormatter(t *testing.T) {
	path := filepath.Join("testdata", wasmplugin.DefaultName)
	if _, err := os.Stat(path); err != nil {
		t.Skipf("%s not built", path)
	}
	ctx := context.Background()
	plugin, err := wasmplugin.Load(ctx, path, wasmplugin.Options{})
	assert.NilError(t, err)
	defer plugin.Close(ctx)

	got, err := plugin.Format(ctx, []byte("impl E {\nfn a(&self) -> u8 {  \n1\n}\n\n\n}\n"))
	assert.NilError(t, err)
	assert.Equal(t, string(got), "impl E {\n    fn a(&self) -> u8 {\n        1\n    }\n}\n")

	_, err = plugin.Format(ctx, []byte("impl E {\n"))
	var formatErr *wasmplugin.FormatError
	assert.Assert(t, errors.As(err, &formatErr))
}
