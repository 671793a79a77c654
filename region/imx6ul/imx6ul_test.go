// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imx6ul

import "testing"

func TestTable(t *testing.T) {
	if err := Table.Valid(); err != nil {
		t.Fatal(err)
	}
	if len(Table) != 2 {
		t.Fatal("expected OCRAM and DDR")
	}
	if Table[0].Range.Overlaps(Table[1].Range) {
		t.Error(Table[0], "overlaps", Table[1])
	}
	if got := (DDR{}).End() - (DDR{}).Start(); got != 512<<20 {
		t.Errorf("DDR is %#x bytes", got)
	}
}
