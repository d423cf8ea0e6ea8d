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

// Package wasmplugin runs output formatters compiled to WebAssembly.
//
// A plugin exports its linear memory as "memory" and the functions:
//
//	custom_attrs_allocate(len i32) i32
//	custom_attrs_format(ptr i32, len i32, out_ptr_ptr i32) i32
//
// and optionally custom_attrs_deallocate(ptr i32). On return from
// custom_attrs_format, the pointer at out_ptr_ptr addresses a 4-byte
// little-endian length followed by that many bytes. A zero return code
// means the bytes are the formatted source, otherwise they are an error
// message.
package wasmplugin

//go:generate go run ../build -output=testdata/custom-attrs-fmt.wasm ../../bin/custom-attrs-fmt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	wasm "github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// EnvPath names the environment variable consulted by Locate.
const EnvPath = "CUSTOM_ATTRS_FORMAT_PLUGIN"

// DefaultName is the file Locate looks for when given a directory.
const DefaultName = "custom-attrs-fmt.wasm"

const (
	exportAllocate   = "custom_attrs_allocate"
	exportDeallocate = "custom_attrs_deallocate"
	exportFormat     = "custom_attrs_format"
)

type Options struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// MemoryLimitPages caps the plugin's memory in 64 KiB pages. Defaults
	// to 16384 (1 GiB).
	MemoryLimitPages uint32
}

// setDefaults sets default values for unspecified options.
func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.MemoryLimitPages == 0 {
		o.MemoryLimitPages = 16384
	}
}

// Plugin is an instantiated formatter. Calls to Format are serialized.
type Plugin struct {
	log *zap.Logger

	mu      sync.Mutex
	runtime wasm.Runtime
	memory  api.Memory

	allocate   api.Function
	deallocate api.Function
	format     api.Function
}

// Load reads and instantiates the plugin at path.
func Load(ctx context.Context, path string, opts Options) (*Plugin, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts.setDefaults()
	opts.Logger = opts.Logger.With(zap.String("plugin", path))
	return New(ctx, bin, opts)
}

// New instantiates a plugin from its binary.
func New(ctx context.Context, bin []byte, opts Options) (*Plugin, error) {
	opts.setDefaults()

	runtimeConfig := wasm.NewRuntimeConfigInterpreter()
	runtimeConfig = runtimeConfig.WithMemoryLimitPages(opts.MemoryLimitPages)
	runtime := wasm.NewRuntimeWithConfig(ctx, runtimeConfig)

	plugin, err := instantiate(ctx, runtime, bin)
	if err != nil {
		runtime.Close(ctx)
		return nil, err
	}
	plugin.log = opts.Logger
	plugin.log.Debug("plugin loaded")
	return plugin, nil
}

func instantiate(ctx context.Context, runtime wasm.Runtime, bin []byte) (*Plugin, error) {
	exe, err := runtime.CompileModule(ctx, bin)
	if err != nil {
		return nil, fmt.Errorf("compile plugin: %w", err)
	}

	// Plugins built for WASI import it even if they never call it.
	for _, fn := range exe.ImportedFunctions() {
		if module, _, _ := fn.Import(); module == wasi_snapshot_preview1.ModuleName {
			if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
				return nil, fmt.Errorf("instantiate WASI: %w", err)
			}
			break
		}
	}

	moduleConfig := wasm.NewModuleConfig().WithStartFunctions("_initialize")
	module, err := runtime.InstantiateModule(ctx, exe, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("instantiate plugin: %w", err)
	}

	p := &Plugin{
		runtime:    runtime,
		memory:     module.ExportedMemory("memory"),
		allocate:   module.ExportedFunction(exportAllocate),
		deallocate: module.ExportedFunction(exportDeallocate),
		format:     module.ExportedFunction(exportFormat),
	}
	switch {
	case p.memory == nil:
		return nil, errMissingExport("memory")
	case p.allocate == nil:
		return nil, errMissingExport(exportAllocate)
	case p.format == nil:
		return nil, errMissingExport(exportFormat)
	}
	return p, nil
}

func errMissingExport(name string) error {
	return fmt.Errorf("plugin does not export %q", name)
}

// Close releases the plugin runtime.
func (p *Plugin) Close(ctx context.Context) error {
	return p.runtime.Close(ctx)
}

// Format passes src through the plugin.
func (p *Plugin) Format(ctx context.Context, src []byte) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	srcPtr, err := p.alloc(ctx, uint32(len(src)))
	if err != nil {
		return nil, err
	}
	defer p.free(ctx, srcPtr)
	if !p.memory.Write(srcPtr, src) {
		return nil, fmt.Errorf("write %d bytes at %#x: out of range", len(src), srcPtr)
	}

	outPtrPtr, err := p.alloc(ctx, 4)
	if err != nil {
		return nil, err
	}
	defer p.free(ctx, outPtrPtr)

	results, err := p.format.Call(ctx, uint64(srcPtr), uint64(len(src)), uint64(outPtrPtr))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", exportFormat, err)
	}
	rc := uint32(results[0])

	outPtr, ok := p.memory.ReadUint32Le(outPtrPtr)
	if !ok {
		return nil, fmt.Errorf("Failed to read response pointer")
	}
	defer p.free(ctx, outPtr)
	outLen, ok := p.memory.ReadUint32Le(outPtr)
	if !ok {
		return nil, fmt.Errorf("Failed to read response length")
	}
	view, ok := p.memory.Read(outPtr+4, outLen)
	if !ok {
		return nil, fmt.Errorf("Failed to read response (%d bytes)", outLen)
	}
	out := make([]byte, len(view))
	copy(out, view)

	p.log.Debug("plugin call",
		zap.Int("input_bytes", len(src)),
		zap.Int("output_bytes", len(out)),
		zap.Uint32("rc", rc),
	)
	if rc != 0 {
		return nil, &FormatError{Code: rc, Message: sanitize(out)}
	}
	return out, nil
}

func (p *Plugin) alloc(ctx context.Context, size uint32) (uint32, error) {
	results, err := p.allocate.Call(ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", exportAllocate, err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, fmt.Errorf("%s(%d) returned null", exportAllocate, size)
	}
	return ptr, nil
}

func (p *Plugin) free(ctx context.Context, ptr uint32) {
	if p.deallocate == nil || ptr == 0 {
		return
	}
	if _, err := p.deallocate.Call(ctx, uint64(ptr)); err != nil {
		p.log.Warn("plugin deallocate failed", zap.Error(err))
	}
}

// FormatError is returned when the plugin rejects its input.
type FormatError struct {
	Code    uint32
	Message string
}

func (err *FormatError) Error() string {
	return err.Message
}

// sanitize trims trailing newlines and replaces control characters and
// invalid UTF-8 with U+FFFD.
func sanitize(msg []byte) string {
	text := strings.TrimRight(strings.ToValidUTF8(string(msg), "�"), "\r\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7F {
			return utf8.RuneError
		}
		return r
	}, text)
}

// Locate returns the plugin path named by path, or by $CUSTOM_ATTRS_FORMAT_PLUGIN
// if path is empty. A directory is searched for DefaultName. An empty
// result with a nil error means no plugin was requested.
func Locate(path string) (string, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("Formatter plugin %s not found", path)
	}
	if !info.IsDir() {
		return path, nil
	}
	pluginPath := filepath.Join(path, DefaultName)
	if _, err := os.Stat(pluginPath); err != nil {
		return "", fmt.Errorf("Formatter plugin %s not found in %s", DefaultName, path)
	}
	return pluginPath, nil
}
