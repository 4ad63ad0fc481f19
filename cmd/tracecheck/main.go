package main

import (
	"os"

	"github.com/tracecheck/tracecheck/cmd/tracecheck/cmds"
)

func main() {
	if cmds.New().Execute() != nil {
		os.Exit(1)
	}
}
