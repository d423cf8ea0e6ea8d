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

package testutil

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/tools/txtar"
)

// Case is one txtar test fixture. The archive comment holds free-form notes;
// each file section is addressed by name.
type Case struct {
	Name    string
	Comment string
	files   map[string][]byte
	order   []string
}

// File returns the contents of a section, or false if it is absent.
func (c *Case) File(name string) ([]byte, bool) {
	data, ok := c.files[name]
	return data, ok
}

// Require is like File, but returns an error if the section is absent.
func (c *Case) Require(name string) ([]byte, error) {
	data, ok := c.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: missing section %q", c.Name, name)
	}
	return data, nil
}

// Files lists section names in archive order.
func (c *Case) Files() []string {
	return c.order
}

func ParseCase(name string, data []byte) (*Case, error) {
	archive := txtar.Parse(data)
	c := &Case{
		Name:    name,
		Comment: strings.TrimSpace(string(archive.Comment)),
		files:   make(map[string][]byte, len(archive.Files)),
	}
	for _, file := range archive.Files {
		if _, dup := c.files[file.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate section %q", name, file.Name)
		}
		c.files[file.Name] = file.Data
		c.order = append(c.order, file.Name)
	}
	return c, nil
}

// LoadCases reads every *.txtar file in dir, sorted by name.
func LoadCases(testdata fs.FS, dir string) ([]*Case, error) {
	entries, err := fs.ReadDir(testdata, dir)
	if err != nil {
		return nil, err
	}
	var cases []*Case
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txtar" {
			continue
		}
		data, err := fs.ReadFile(testdata, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		c, err := ParseCase(strings.TrimSuffix(entry.Name(), ".txtar"), data)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	slices.SortFunc(cases, func(a, b *Case) int {
		return strings.Compare(a.Name, b.Name)
	})
	return cases, nil
}
