// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package region

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrDuplicate = errors.New("duplicate region")

// Table is the per-chip bounds table.
type Table []Entry

// Lookup the named region, ignoring case.
func (t Table) Lookup(name string) (Entry, bool) {
	for _, e := range t {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Containing returns the entries that fully contain [addr, addr+size).
func (t Table) Containing(addr, size uintptr) Table {
	var found Table
	for _, e := range t {
		if e.Range.Contains(addr, size) {
			found = append(found, e)
		}
	}
	return found
}

func (t Table) Valid() error {
	seen := make(map[string]struct{}, len(t))
	for _, e := range t {
		if err := e.Valid(); err != nil {
			return err
		}
		k := strings.ToLower(e.Name)
		if _, found := seen[k]; found {
			return errors.Wrap(ErrDuplicate, e.Name)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// ReadIOMem parses the /proc/iomem format,
//
//	30000000-3001ffff : SRAM1
//	  30000100-300004ff : rx-ring
//
// The end address of each line is inclusive. Nested lines are entries of
// their own; a repeated name gets a ".N" suffix so that names stay unique.
func ReadIOMem(r io.Reader) (Table, error) {
	var t Table
	count := make(map[string]int)
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.SplitN(text, ":", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: %q: missing name", line, text)
		}
		var start, last uint64
		if n, err := fmt.Sscanf(strings.TrimSpace(fields[0]), "%x-%x",
			&start, &last); n != 2 || err != nil ||
			!fits(start) || !fits(last+1) || last+1 == 0 {
			return nil, fmt.Errorf("line %d: %q: invalid range", line, fields[0])
		}
		name := strings.TrimSpace(fields[1])
		if n := count[name]; n > 0 {
			count[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			count[name] = 1
		}
		t = append(t, Entry{
			Name:  name,
			Range: Range{Start: uintptr(start), End: uintptr(last) + 1},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "iomem")
	}
	if err := t.Valid(); err != nil {
		return nil, err
	}
	return t, nil
}

// fits is false for addresses a uintptr can't hold.
func fits(u uint64) bool {
	return u <= uint64(^uintptr(0))
}

type yamlTable struct {
	Regions []struct {
		Name  string `yaml:"name"`
		Start uint64 `yaml:"start"`
		End   uint64 `yaml:"end"`
	} `yaml:"regions"`
}

// ReadYAML decodes
//
//	regions:
//	  - name: SRAM1
//	    start: 0x30000000
//	    end: 0x30020000
//
// where end is exclusive.
func ReadYAML(r io.Reader) (Table, error) {
	var y yamlTable
	if err := yaml.NewDecoder(r).Decode(&y); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "yaml")
	}
	t := make(Table, 0, len(y.Regions))
	for _, v := range y.Regions {
		if !fits(v.Start) || !fits(v.End) {
			return nil, errors.Wrapf(ErrMalformed, "%s: %#x-%#x",
				v.Name, v.Start, v.End)
		}
		t = append(t, Entry{
			Name:  v.Name,
			Range: Range{Start: uintptr(v.Start), End: uintptr(v.End)},
		})
	}
	if err := t.Valid(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load a table from a .yaml/.yml file or else an iomem formatted file.
func Load(fn string) (Table, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var t Table
	switch filepath.Ext(fn) {
	case ".yaml", ".yml":
		t, err = ReadYAML(f)
	default:
		t, err = ReadIOMem(f)
	}
	return t, errors.WithMessage(err, fn)
}
