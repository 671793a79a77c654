// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage provides backing memory for dmabuf.Buffer.
//
// Static is for targets where the CPU and the DMA controller share one flat
// address space. Arena is a hosted stand-in for a physical memory window,
// with bus addresses that differ from the CPU's.
//
// Either hands its elements over once; a second Claim panics with
// ErrClaimed.
package storage

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

var ErrClaimed = errors.New("storage already claimed")

type once struct {
	claimed atomic.Bool
}

func (o *once) claim(addr uintptr) {
	if !o.claimed.CompareAndSwap(false, true) {
		panic(errors.Wrapf(ErrClaimed, "%#x", addr))
	}
}

// Claimed reports whether the elements have been handed over.
func (o *once) Claimed() bool { return o.claimed.Load() }

// Static is memory whose bus address is its CPU address.
type Static[T any] struct {
	once
	elems []T
	addr  uintptr
}

// Of wraps the given slice, typically a linker placed array. The caller
// must not keep using s once the Static is claimed.
func Of[T any](s []T) *Static[T] {
	return &Static[T]{
		elems: s,
		addr:  uintptr(unsafe.Pointer(unsafe.SliceData(s))),
	}
}

// At views n elements at addr. The memory isn't touched here but it must be
// mapped before the elements are used. Go can't make a non-empty slice at
// address zero so At panics for that.
func At[T any](addr uintptr, n int) *Static[T] {
	return &Static[T]{
		elems: unsafe.Slice((*T)(unsafe.Pointer(addr)), n),
		addr:  addr,
	}
}

func (s *Static[T]) Claim() []T {
	s.claim(s.addr)
	return s.elems
}

func (s *Static[T]) Addr() uintptr { return s.addr }
