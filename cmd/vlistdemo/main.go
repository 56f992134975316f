package main

import (
	"fmt"
	"os"

	"github.com/ayn2op/vlist/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vlistdemo:", err)
		os.Exit(1)
	}
}
