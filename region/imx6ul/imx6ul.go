// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imx6ul defines the DMA reachable memory of the i.MX6UL/ULL as laid
// out on the USB armory Mk II.
package imx6ul

import "github.com/platinasystems/dmabuf/region"

// On-chip RAM (128KB).
type OCRAM struct{}

func (OCRAM) Start() uintptr { return 0x0090_0000 }
func (OCRAM) End() uintptr   { return 0x0092_0000 }
func (OCRAM) String() string { return "OCRAM" }

// External DDR (512MB) through the MMDC.
type DDR struct{}

func (DDR) Start() uintptr { return 0x8000_0000 }
func (DDR) End() uintptr   { return 0xa000_0000 }
func (DDR) String() string { return "DDR" }

var Table = region.Table{
	region.EntryOf(OCRAM{}),
	region.EntryOf(DDR{}),
}
