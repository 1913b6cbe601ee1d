package main

import (
	"fmt"
	"os"

	"github.com/dynamic-superb/taskops/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the taskops command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
