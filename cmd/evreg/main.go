// Command evreg runs event registry scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/nkcmr/evreg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "evreg:", err)
		os.Exit(1)
	}
}
