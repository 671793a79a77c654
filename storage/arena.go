// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/platinasystems/log"
	"golang.org/x/sys/unix"

	"github.com/platinasystems/dmabuf/region"
)

var (
	ErrClosed     = errors.New("arena closed")
	ErrMisaligned = errors.New("misaligned placement")
	ErrOutOfRange = errors.New("placement out of range")
	ErrOverlap    = errors.New("placement overlaps")
)

// Arena is anonymous memory outside the Go heap that the controller sees
// at a bus base address, so the collector never moves or frees it under a
// transfer. Placements never overlap; each range has exactly one owner.
type Arena struct {
	mu     sync.Mutex
	base   uintptr
	mem    []byte
	next   uintptr
	placed []region.Range
	closed bool
}

// Window is a placement in an Arena.
type Window[T any] struct {
	once
	elems []T
	addr  uintptr
}

// Claim hands the window's elements to their one owner.
func (w *Window[T]) Claim() []T {
	w.claim(w.addr)
	return w.elems
}

func (w *Window[T]) Addr() uintptr { return w.addr }

func NewArena(base uintptr, size int) (*Arena, error) {
	if size <= 0 || base+uintptr(size) < base {
		return nil, errors.Wrapf(ErrOutOfRange, "%#x+%d", base, size)
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, errors.Wrap(err, "mmap")
	}
	return &Arena{base: base, mem: mem}, nil
}

func (a *Arena) Base() uintptr { return a.base }
func (a *Arena) Size() int     { return len(a.mem) }

func (a *Arena) Range() region.Range {
	return region.Range{Start: a.base, End: a.base + uintptr(len(a.mem))}
}

// Translate a CPU pointer into the arena to its bus address.
func (a *Arena) Translate(p unsafe.Pointer) (uintptr, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return 0, false
	}
	cpu := region.Range{
		Start: uintptr(unsafe.Pointer(unsafe.SliceData(a.mem))),
		End:   uintptr(unsafe.Pointer(unsafe.SliceData(a.mem))) + uintptr(len(a.mem)),
	}
	if !cpu.Contains(uintptr(p), 1) {
		return 0, false
	}
	return a.base + (uintptr(p) - cpu.Start), true
}

// Close unmaps the arena. No transfer may be outstanding against any of its
// windows and none may be used afterwards.
func (a *Arena) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	a.closed = true
	a.placed = nil
	if err := unix.Munmap(a.mem); err != nil {
		log.Print("err", "arena ", a.Range(), ": munmap: ", err)
		return errors.Wrap(err, "munmap")
	}
	return nil
}

// Place n elements at the given byte offset from the arena base.
func Place[T any](a *Arena, offset uintptr, n int) (*Window[T], error) {
	var v T
	size, err := a.sizeOf(n, unsafe.Sizeof(v))
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err = a.reserve(offset, size, unsafe.Alignof(v)); err != nil {
		return nil, err
	}
	return window[T](a, offset, n), nil
}

// Alloc n elements at the next aligned offset past every placement.
func Alloc[T any](a *Arena, n int) (*Window[T], error) {
	var v T
	size, err := a.sizeOf(n, unsafe.Sizeof(v))
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	align := unsafe.Alignof(v)
	offset := (a.next + align - 1) &^ (align - 1)
	if err = a.reserve(offset, size, align); err != nil {
		return nil, err
	}
	return window[T](a, offset, n), nil
}

func (a *Arena) sizeOf(n int, elt uintptr) (uintptr, error) {
	if n < 0 || (elt > 0 && uintptr(n) > uintptr(len(a.mem))/elt) {
		return 0, errors.Wrapf(ErrOutOfRange, "%d elements", n)
	}
	return uintptr(n) * elt, nil
}

// reserve is called with the lock held.
func (a *Arena) reserve(offset, size, align uintptr) error {
	if a.closed {
		return ErrClosed
	}
	if offset%align != 0 {
		return errors.Wrapf(ErrMisaligned, "offset %#x align %d", offset, align)
	}
	if !(region.Range{End: uintptr(len(a.mem))}).Contains(offset, size) {
		return errors.Wrapf(ErrOutOfRange, "offset %#x size %d", offset, size)
	}
	if size == 0 {
		return nil
	}
	r := region.Range{Start: a.base + offset, End: a.base + offset + size}
	for _, p := range a.placed {
		if p.Overlaps(r) {
			return errors.Wrapf(ErrOverlap, "%v with %v", r, p)
		}
	}
	a.placed = append(a.placed, r)
	if end := offset + size; end > a.next {
		a.next = end
	}
	return nil
}

func window[T any](a *Arena, offset uintptr, n int) *Window[T] {
	w := &Window[T]{addr: a.base + offset}
	if n > 0 {
		w.elems = unsafe.Slice((*T)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(a.mem)), offset)), n)
	}
	return w
}
