// Command gatecheck is built by the package tests to inspect which parts of
// the assertion runtime each build mode links in.
package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/rassert"
)

func main() {
	n := len(os.Args)
	rassert.That(n > 0)
	rassert.Thatf(n < 100, "args %d", n)
	rassert.Func(func() bool { return n != 0 })
	fmt.Println(rassert.Enabled)
}
