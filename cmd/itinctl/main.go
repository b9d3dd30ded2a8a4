package main

import (
	"fmt"
	"os"

	"itinerary/internal/cli"
	"itinerary/internal/config"
)

func main() {
	cmd := cli.NewRootCommand(cli.OpenFromConfig(config.Load()))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
