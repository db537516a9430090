package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the CLI with args and returns the process exit code. Without
// arguments only the app description is printed.
func run(args []string, w io.Writer) int {
	if len(args) == 0 {
		newConsole(w, false).Description(appInfo())
		return 0
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(w)
	if err := Execute(); err != nil {
		return 1
	}
	return 0
}
