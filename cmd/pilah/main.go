package main

import (
	"fmt"
	"os"

	"github.com/pilahlab/pilah/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pilah: %v\n", err)
		os.Exit(1)
	}
}
