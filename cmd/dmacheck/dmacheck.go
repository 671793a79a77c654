// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package dmacheck checks a placement against a chip's DMA bounds table.
package dmacheck

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"

	"github.com/platinasystems/dmabuf"
	"github.com/platinasystems/dmabuf/region"
	"github.com/platinasystems/dmabuf/region/imx6ul"
	"github.com/platinasystems/dmabuf/region/stm32h7"
)

const (
	Name    = "dmacheck"
	Apropos = "check that memory is reachable by DMA"
	Usage   = `
	dmacheck [-v] [-chip CHIP | -table FILE] REGION ADDRESS SIZE
	dmacheck [-chip CHIP | -table FILE] ADDRESS SIZE
	dmacheck [-chip CHIP | -table FILE] -l`
	Man = `
DESCRIPTION
	Check that SIZE bytes at ADDRESS lie entirely within the DMA
	reachable REGION. Without REGION, print each region that contains
	the range.

	ADDRESS may be decimal, 0x hex, or 0o octal. SIZE may also have a
	unit, e.g. 4KiB.

OPTIONS
	-chip CHIP
		builtin bounds table: stm32h7 (default) or imx6ul
	-table FILE
		bounds from a YAML (.yaml, .yml) or /proc/iomem formatted FILE
	-l	list regions
	-v	print the region of a valid placement`
)

const DefaultChip = "stm32h7"

var Chips = map[string]region.Table{
	"stm32h7": stm32h7.Table,
	"imx6ul":  imx6ul.Table,
}

var ErrNoRegion = errors.New("no such region")

func New() *Command { return &Command{Stdout: os.Stdout} }

type Command struct {
	Stdout io.Writer
}

func (*Command) Apropos() string { return Apropos }
func (*Command) Man() string     { return Man }
func (*Command) String() string  { return Name }
func (*Command) Usage() string   { return Usage }

func (c *Command) Main(args ...string) error {
	flag, args := flags.New(args, "-l", "-v")
	parm, args := parms.New(args, "-chip", "-table")

	t, err := table(parm.ByName["-chip"], parm.ByName["-table"])
	if err != nil {
		return err
	}
	if flag.ByName["-l"] {
		if len(args) > 0 {
			return fmt.Errorf("%v: unexpected", args)
		}
		for _, e := range t {
			fmt.Fprintf(c.Stdout, "%-8s %v %s\n", e.Name, e.Range,
				humanize.IBytes(uint64(e.Range.Size())))
		}
		return nil
	}
	switch len(args) {
	case 0:
		return fmt.Errorf("ADDRESS SIZE: missing")
	case 1:
		return fmt.Errorf("SIZE: missing")
	case 2:
		addr, size, err := placement(args[0], args[1])
		if err != nil {
			return err
		}
		in := t.Containing(addr, size)
		if len(in) == 0 {
			return errors.Wrapf(dmabuf.ErrRegionMismatch, "%#x+%s",
				addr, humanize.IBytes(uint64(size)))
		}
		for _, e := range in {
			fmt.Fprintln(c.Stdout, e.Name)
		}
		return nil
	case 3:
		e, found := t.Lookup(args[0])
		if !found {
			return errors.Wrap(ErrNoRegion, args[0])
		}
		addr, size, err := placement(args[1], args[2])
		if err != nil {
			return err
		}
		if err = dmabuf.Validate(e, addr, size); err != nil {
			return err
		}
		if flag.ByName["-v"] {
			fmt.Fprintf(c.Stdout, "%s %#x+%s\n", e.Name, addr,
				humanize.IBytes(uint64(size)))
		}
		return nil
	default:
		return fmt.Errorf("%v: unexpected", args[3:])
	}
}

func table(chip, fn string) (region.Table, error) {
	if len(fn) > 0 {
		if len(chip) > 0 {
			return nil, fmt.Errorf("-chip and -table are exclusive")
		}
		return region.Load(fn)
	}
	if len(chip) == 0 {
		chip = DefaultChip
	}
	t, found := Chips[chip]
	if !found {
		return nil, fmt.Errorf("%s: unknown chip", chip)
	}
	return t, nil
}

func placement(addrArg, sizeArg string) (addr, size uintptr, err error) {
	a, err := strconv.ParseUint(addrArg, 0, 64)
	if err != nil || a > uint64(^uintptr(0)) {
		return 0, 0, fmt.Errorf("%s: invalid ADDRESS", addrArg)
	}
	s, err := strconv.ParseUint(sizeArg, 0, 64)
	if err != nil {
		if s, err = humanize.ParseBytes(sizeArg); err != nil {
			return 0, 0, fmt.Errorf("%s: invalid SIZE", sizeArg)
		}
	}
	if s > uint64(^uintptr(0)) {
		return 0, 0, fmt.Errorf("%s: invalid SIZE", sizeArg)
	}
	return uintptr(a), uintptr(s), nil
}
