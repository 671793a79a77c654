// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dmabuf

import "iter"

// View is a read-only borrow of a Buffer. Don't hold one while the
// controller is writing the buffer.
type View[T any] struct {
	elems []T
}

func (v View[T]) Len() int   { return len(v.elems) }
func (v View[T]) At(i int) T { return v.elems[i] }

// CopyTo copies up to len(dst) elements and returns the number copied.
func (v View[T]) CopyTo(dst []T) int { return copy(dst, v.elems) }

func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.elems {
			if !yield(i, x) {
				return
			}
		}
	}
}
