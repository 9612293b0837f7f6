package main

import (
	"fmt"
	"os"

	"github.com/limaJavier/eventgrid/internal/cli"
)

func main() {
	opts := &cli.RootOptions{}
	if err := cli.NewRootCommand(opts).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "eventgrid: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
	os.Exit(opts.Status)
}
