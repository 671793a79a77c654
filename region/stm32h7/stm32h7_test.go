// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stm32h7

import (
	"testing"

	"github.com/platinasystems/dmabuf/region"
)

func TestTable(t *testing.T) {
	if err := Table.Valid(); err != nil {
		t.Fatal(err)
	}
	for _, x := range []struct {
		d          region.Descriptor
		start, end uintptr
	}{
		{Sram1{}, 0x3000_0000, 0x3002_0000},
		{Dtcm{}, 0x2000_0000, 0x2001_0000},
		{Itcm{}, 0x0000_0000, 0x0001_0000},
	} {
		if x.d.Start() >= x.d.End() {
			t.Errorf("%s: start %#x not below end %#x",
				region.Name(x.d), x.d.Start(), x.d.End())
		}
		if x.d.Start() != x.start || x.d.End() != x.end {
			t.Errorf("%s: %v", region.Name(x.d), region.RangeOf(x.d))
		}
		if _, found := Table.Lookup(region.Name(x.d)); !found {
			t.Errorf("%s: not in table", region.Name(x.d))
		}
	}
	for i, a := range Table {
		for _, b := range Table[i+1:] {
			if a.Range.Overlaps(b.Range) {
				t.Errorf("%s overlaps %s", a, b)
			}
		}
	}
}
