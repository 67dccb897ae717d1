// Command placeholder-proxy serves cached, paginated JSONPlaceholder data
// and deterministic framework pseudo-metrics over HTTP.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
