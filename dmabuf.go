// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dmabuf certifies that memory handed to a DMA controller lies in a
// region the controller can reach.
//
// A Buffer is tagged with a region marker type and checks its storage against
// the marker's bounds exactly once, when it's made. A placement mismatch
// can't be fixed at run time since placement comes from the linker, so
// callers should treat a construction error as fatal; MustNew does that.
//
//	buf := dmabuf.MustNew[byte, stm32h7.Sram1](storage.At[byte](addr, 1024))
//	i2c.WriteRead(0x5f, buf.Addr(), buf.Size())
//
// After construction nothing is re-checked and nothing can fail.
//
// The core has no locks. Mut and Pointer expose memory that the controller
// may also be reading or writing; it's the caller's job to not touch a
// buffer while a transfer is in flight.
package dmabuf

import (
	"fmt"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/platinasystems/log"

	"github.com/platinasystems/dmabuf/region"
)

// Storage is memory placed by the integrator. Claim hands the CPU's view of
// the elements to their one owner and should panic if called again; Addr is
// the bus address of the first element as seen by the controller.
//
// A Buffer takes ownership of its storage. The storage must outlive the
// Buffer and must not be written or wrapped again by anything else. Element
// types should be pointer free; the memory may be outside the Go heap.
type Storage[T any] interface {
	Claim() []T
	Addr() uintptr
}

// Target is what a driver needs to program a transfer.
type Target interface {
	Addr() uintptr
	Size() uintptr
}

// Buffer is a run of T the controller can reach in region R. It must come
// from New, NewFilled or their Must variants; the zero value was never
// checked and must not be handed to a driver.
type Buffer[T any, R region.Descriptor] struct {
	elems []T
	addr  uintptr
}

func sizeof[T any]() uintptr {
	var v T
	return unsafe.Sizeof(v)
}

// New claims s and checks that it lies entirely within R. The error is a
// *MismatchError; a claimed storage stays claimed even then.
func New[T any, R region.Descriptor](s Storage[T]) (*Buffer[T, R], error) {
	return newBuffer[T, R](s.Claim(), s.Addr())
}

// NewFilled writes fill to every element, once, then validates.
func NewFilled[T any, R region.Descriptor](s Storage[T], fill T) (*Buffer[T, R], error) {
	elems := s.Claim()
	for i := range elems {
		elems[i] = fill
	}
	return newBuffer[T, R](elems, s.Addr())
}

// MustNew is New that logs and panics on a mismatch.
func MustNew[T any, R region.Descriptor](s Storage[T]) *Buffer[T, R] {
	return must[T, R](New[T, R](s))
}

// MustNewFilled is NewFilled that logs and panics on a mismatch.
func MustNewFilled[T any, R region.Descriptor](s Storage[T], fill T) *Buffer[T, R] {
	return must[T, R](NewFilled[T, R](s, fill))
}

func must[T any, R region.Descriptor](b *Buffer[T, R], err error) *Buffer[T, R] {
	if err != nil {
		log.Print("err", err)
		panic(err)
	}
	return b
}

func newBuffer[T any, R region.Descriptor](elems []T, addr uintptr) (*Buffer[T, R], error) {
	var r R
	n := len(elems)
	if err := Validate(r, addr, uintptr(n)*sizeof[T]()); err != nil {
		return nil, err
	}
	return &Buffer[T, R]{
		elems: elems[:n:n],
		addr:  addr,
	}, nil
}

// Len is the element count fixed at construction.
func (b *Buffer[T, R]) Len() int { return len(b.elems) }

func (b *Buffer[T, R]) IsEmpty() bool { return len(b.elems) == 0 }
func (b *Buffer[T, R]) Size() uintptr { return uintptr(len(b.elems)) * sizeof[T]() }

// Addr is the validated bus address of the first element, what a driver
// programs into the controller.
func (b *Buffer[T, R]) Addr() uintptr { return b.addr }

// View borrows the elements read-only.
func (b *Buffer[T, R]) View() View[T] { return View[T]{b.elems} }

func (b *Buffer[T, R]) Region() region.Entry {
	var r R
	return region.EntryOf(r)
}

// Mut returns the elements for writing. There must be no transfer in flight
// to or from the buffer while the slice is in use, and the slice must not be
// retained past that.
func (b *Buffer[T, R]) Mut() []T { return b.elems }

// Pointer returns the CPU address of the first element, valid for Len
// elements. Synchronizing with the controller is the caller's problem.
func (b *Buffer[T, R]) Pointer() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b.elems))
}

func (b *Buffer[T, R]) String() string {
	return fmt.Sprintf("%s[%d]@%#x (%s)", b.Region(), b.Len(), b.addr,
		humanize.IBytes(uint64(b.Size())))
}
