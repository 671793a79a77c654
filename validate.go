// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dmabuf

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/platinasystems/dmabuf/region"
)

var ErrRegionMismatch = errors.New("buffer not in DMA-accessible region")

// MismatchError describes storage that isn't fully inside its region.
type MismatchError struct {
	Region string
	Range  region.Range
	Addr   uintptr
	Size   uintptr
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: %#x+%s outside %s %v", ErrRegionMismatch,
		e.Addr, humanize.IBytes(uint64(e.Size)), e.Region, e.Range)
}

func (e *MismatchError) Unwrap() error { return ErrRegionMismatch }

// Validate that [addr, addr+size) is within the given region.
func Validate(d region.Descriptor, addr, size uintptr) error {
	r := region.RangeOf(d)
	if r.Contains(addr, size) {
		return nil
	}
	return &MismatchError{
		Region: region.Name(d),
		Range:  r,
		Addr:   addr,
		Size:   size,
	}
}
