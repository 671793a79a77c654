// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package region describes the physical memory areas a DMA controller can
// address.
//
// A region is identified by a zero-sized marker type whose value methods
// return the documented bounds, e.g.
//
//	type Sram1 struct{}
//
//	func (Sram1) Start() uintptr { return 0x3000_0000 }
//	func (Sram1) End() uintptr   { return 0x3002_0000 }
//
// Markers are used as type parameters, so the zero value is all that is
// ever needed to recover the bounds.
package region

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrMalformed = errors.New("malformed region")

// Descriptor fixes the inclusive start and exclusive end address of a bus
// accessible memory area.
type Descriptor interface {
	Start() uintptr
	End() uintptr
}

// Range is [Start, End).
type Range struct {
	Start uintptr
	End   uintptr
}

func RangeOf(d Descriptor) Range { return Range{Start: d.Start(), End: d.End()} }

func (r Range) Size() uintptr { return r.End - r.Start }

// Contains reports whether [addr, addr+size) lies within the range.
// addr+size is never computed so a range ending at the top of the address
// space doesn't wrap.
func (r Range) Contains(addr, size uintptr) bool {
	return addr >= r.Start && addr <= r.End && size <= r.End-addr
}

func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

func (r Range) Valid() error {
	if r.Start >= r.End {
		return errors.Wrapf(ErrMalformed, "%v: start not below end", r)
	}
	return nil
}

func (r Range) String() string { return fmt.Sprintf("%#x-%#x", r.Start, r.End) }

// Name is the marker's String() if it has one; otherwise, its type name.
func Name(d Descriptor) string {
	if s, ok := d.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", d)
}

// Entry is a named range; unlike a marker it may be chosen at run time.
type Entry struct {
	Name  string
	Range Range
}

func EntryOf(d Descriptor) Entry { return Entry{Name: Name(d), Range: RangeOf(d)} }

func (e Entry) Start() uintptr { return e.Range.Start }
func (e Entry) End() uintptr   { return e.Range.End }
func (e Entry) String() string { return e.Name }

func (e Entry) Valid() error {
	if len(e.Name) == 0 {
		return errors.Wrapf(ErrMalformed, "%v: missing name", e.Range)
	}
	return errors.WithMessage(e.Range.Valid(), e.Name)
}
