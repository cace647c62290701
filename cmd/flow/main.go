package main

import (
	"fmt"
	"os"

	"github.com/lazypower/flow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "flow: %v\n", err)
		os.Exit(1)
	}
}
