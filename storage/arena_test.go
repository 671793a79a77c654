// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"testing"
	"unsafe"

	"github.com/platinasystems/dmabuf/internal/test"
)

func newArena(t *testing.T, base uintptr, size int) *Arena {
	t.Helper()
	a, err := NewArena(base, size)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestPlace(t *testing.T) {
	assert := test.Assert{TB: t}
	a := newArena(t, 0x3000_0000, 0x20000)
	assert.Equal(a.Base(), uintptr(0x3000_0000))
	assert.Equal(a.Size(), 0x20000)

	w, err := Place[uint32](a, 0x100, 64)
	assert.Nil(err)
	assert.Equal(w.Addr(), uintptr(0x3000_0100))
	elems := w.Claim()
	assert.Equal(len(elems), 64)
	for i := range elems {
		elems[i] = uint32(i)
	}
	bus, ok := a.Translate(unsafe.Pointer(&elems[10]))
	assert.True(ok)
	assert.Equal(bus, uintptr(0x3000_0100+40))

	_, err = Place[byte](a, 0x1ff, 2)
	assert.Error(err, ErrOverlap)
	_, err = Place[byte](a, 0xff, 2)
	assert.Error(err, ErrOverlap)
	_, err = Place[byte](a, 0x200, 2)
	assert.Nil(err)
	_, err = Place[byte](a, 0xff, 1)
	assert.Nil(err)
	_, err = Place[uint32](a, 0x302, 1)
	assert.Error(err, ErrMisaligned)
	_, err = Place[byte](a, 0x1fff0, 0x11)
	assert.Error(err, ErrOutOfRange)
	_, err = Place[byte](a, 0x1fff0, -1)
	assert.Error(err, ErrOutOfRange)
	wb, err := Place[byte](a, 0x1fff0, 0x10)
	assert.Nil(err)
	assert.Equal(wb.Addr(), uintptr(0x3001_fff0))
	assert.Equal(len(wb.Claim()), 0x10)

	// empty placements own nothing
	e, err := Place[byte](a, 0x100, 0)
	assert.Nil(err)
	assert.Equal(len(e.Claim()), 0)
	e, err = Place[byte](a, 0x20000, 0)
	assert.Nil(err)
	assert.Equal(e.Addr(), uintptr(0x3002_0000))
}

func TestAlloc(t *testing.T) {
	assert := test.Assert{TB: t}
	a := newArena(t, 0x2000_0000, 0x100)
	b, err := Alloc[byte](a, 3)
	assert.Nil(err)
	assert.Equal(b.Addr(), uintptr(0x2000_0000))
	u, err := Alloc[uint64](a, 2)
	assert.Nil(err)
	assert.Equal(u.Addr(), uintptr(0x2000_0008))
	_, err = Alloc[uint64](a, 30)
	assert.Error(err, ErrOutOfRange)
	_, err = Alloc[uint64](a, 29)
	assert.Nil(err)
	_, err = Alloc[byte](a, 1)
	assert.Error(err, ErrOutOfRange)
}

func TestTranslateOutside(t *testing.T) {
	a := newArena(t, 0x1000, 0x1000)
	var x int
	if _, ok := a.Translate(unsafe.Pointer(&x)); ok {
		t.Fatal("translated host memory")
	}
}

func TestClose(t *testing.T) {
	assert := test.Assert{TB: t}
	a, err := NewArena(0x9000_0000, 4096)
	assert.Nil(err)
	w, err := Place[byte](a, 0, 16)
	assert.Nil(err)
	p := unsafe.Pointer(&w.Claim()[0])
	assert.Nil(a.Close())
	assert.Error(a.Close(), ErrClosed)
	_, err = Place[byte](a, 16, 16)
	assert.Error(err, ErrClosed)
	_, ok := a.Translate(p)
	assert.False(ok)
}

func TestNewArenaErrors(t *testing.T) {
	assert := test.Assert{TB: t}
	_, err := NewArena(0x1000, 0)
	assert.Error(err, ErrOutOfRange)
	_, err = NewArena(^uintptr(0)-10, 4096)
	assert.Error(err, ErrOutOfRange)
}

func TestStatic(t *testing.T) {
	assert := test.Assert{TB: t}
	backing := make([]uint16, 8)
	s := Of(backing)
	assert.Equal(s.Addr(), uintptr(unsafe.Pointer(&backing[0])))
	assert.Equal(len(s.Claim()), 8)
	at := At[uint16](s.Addr(), 8)
	at.Claim()[3] = 0xbeef
	assert.Equal(backing[3], uint16(0xbeef))
	assert.Equal(len(At[byte](0, 0).Claim()), 0)
	assert.Panic(func() { At[byte](0, 1) }, "nil")
}

func TestClaimOnce(t *testing.T) {
	assert := test.Assert{TB: t}
	a := newArena(t, 0x3000_0000, 0x1000)
	w, err := Place[uint32](a, 0x100, 4)
	assert.Nil(err)
	assert.False(w.Claimed())
	w.Claim()[0] = 0xaa
	assert.True(w.Claimed())
	assert.Panic(func() { w.Claim() }, "^0x30000100: storage already claimed$")

	s := Of(make([]byte, 4))
	s.Claim()
	assert.Panic(func() { s.Claim() }, "storage already claimed")

	// an empty window is still claimed once
	e, err := Place[byte](a, 0x800, 0)
	assert.Nil(err)
	e.Claim()
	assert.Panic(func() { e.Claim() }, "already claimed")
}
