// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stm32h7 defines the DMA reachable memory of the STM32H750.
//
// Bounds are from the RM0433 memory map.
package stm32h7

import "github.com/platinasystems/dmabuf/region"

// AXI/AHB SRAM1, reachable by DMA1 and DMA2.
type Sram1 struct{}

func (Sram1) Start() uintptr { return 0x3000_0000 }
func (Sram1) End() uintptr   { return 0x3002_0000 }
func (Sram1) String() string { return "SRAM1" }

// Data TCM.
type Dtcm struct{}

func (Dtcm) Start() uintptr { return 0x2000_0000 }
func (Dtcm) End() uintptr   { return 0x2001_0000 }
func (Dtcm) String() string { return "DTCM" }

// Instruction TCM. It starts at address zero, where Go can't make a
// non-empty slice, so storage.At can't describe a buffer at its base; start
// such buffers above zero or use storage.Of on a linker placed array.
type Itcm struct{}

func (Itcm) Start() uintptr { return 0x0000_0000 }
func (Itcm) End() uintptr   { return 0x0001_0000 }
func (Itcm) String() string { return "ITCM" }

var Table = region.Table{
	region.EntryOf(Sram1{}),
	region.EntryOf(Dtcm{}),
	region.EntryOf(Itcm{}),
}
