package main

import (
	"fmt"
	"io"
	"runtime"
)

func runVersion(args []string, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "prompting %s (%s) %s %s/%s\n",
		buildVersion, buildCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return ExitCodeSuccess
}
