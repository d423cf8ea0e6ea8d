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

//go:build tinygo.wasm

package main

import (
	"encoding/binary"
	"math"
	"unsafe"
)

var buffers = make(map[*uint8][]uint8)

func main() {}

//go:export custom_attrs_allocate
func customAttrsAllocate(len uint32) *uint8 {
	if len > math.MaxInt32 {
		return nil
	}
	// Zero-length allocations still need a distinct non-null pointer.
	buf := make([]uint8, max(int(len), 1))
	ptr := unsafe.SliceData(buf)
	buffers[ptr] = buf
	return ptr
}

//go:export custom_attrs_deallocate
func customAttrsDeallocate(ptr *uint8) {
	delete(buffers, ptr)
}

//go:export custom_attrs_format
func customAttrsFormat(srcPtr *uint8, srcLen uint32, outPtrPtr **uint8) uint32 {
	src := unsafe.Slice(srcPtr, srcLen)
	out, err := format(src, defaultIndent)
	if err != nil {
		*outPtrPtr = response([]byte(err.Error()))
		return 1
	}
	*outPtrPtr = response(out)
	return 0
}

func response(content []byte) *uint8 {
	buf := make([]uint8, 4+len(content))
	binary.LittleEndian.PutUint32(buf, uint32(len(content)))
	copy(buf[4:], content)
	ptr := unsafe.SliceData(buf)
	buffers[ptr] = buf
	return ptr
}
