// Command valves finds the valve opening order that releases the most
// pressure before the time budget runs out.
package main

import (
	"log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("valves: %v", err)
	}
}
