// Command stations inspects, validates and generates DWLR station datasets
// offline, using the same filter and summary logic as the service.
//
// Usage:
//
//	go run ./cmd/stations list --water-level high --search pune
//	go run ./cmd/stations stats --quality poor
//	go run ./cmd/stations validate data/stations.yaml
//	go run ./cmd/stations generate --count 50 --seed 7 > synthetic.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
