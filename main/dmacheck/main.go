// Copyright © 2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is the dmacheck placement harness.
package main

import (
	"fmt"
	"os"

	"github.com/platinasystems/log"

	"github.com/platinasystems/dmabuf/cmd/dmacheck"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		fmt.Print("usage:", dmacheck.Usage[1:], "\n", dmacheck.Man, "\n")
		return
	}
	if err := dmacheck.New().Main(os.Args[1:]...); err != nil {
		log.Print("err", dmacheck.Name, ": ", err)
		fmt.Fprintln(os.Stderr, dmacheck.Name+":", err)
		os.Exit(1)
	}
}
