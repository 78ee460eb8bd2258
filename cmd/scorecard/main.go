// Command scorecard queries the College Scorecard API from the terminal using
// the same adapter as the HTTP service.
//
// Usage:
//
//	scorecard search Duke --per-page 5
//	scorecard search --state NC --state SC --type Public
//	scorecard get 198419 --json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
