// SPDX-License-Identifier: EPL-2.0

// Command audloop plays the tracks listed in a configuration file in
// endless loops until interrupted.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(newApp(os.Stdout, os.Stderr).run(context.Background(), os.Args[1:]))
}
