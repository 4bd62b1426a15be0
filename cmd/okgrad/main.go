// Command okgrad generates gradients from the command line and serves
// the HTTP API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "okgrad:", err)
		os.Exit(1)
	}
}
