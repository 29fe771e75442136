// Package main provides a command-line utility to dump flat value
// stores written by sweep's incremental array writer. It prints the
// stored float64 values with their flat indices for debugging.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scigolib/sweep/internal/utils"
	"github.com/scigolib/sweep/internal/writer"
)

func main() {
	// Define command-line flags
	start := flag.Int("start", 0, "Flat index to start dumping from")
	count := flag.Int("count", 0, "Number of values to dump (0 = to end of store)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: dumpstore [flags] <store.bin>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("Failed to read store: %v", err)
	}
	if len(raw)%writer.ValueSize != 0 {
		log.Fatalf("Store size %d is not a whole number of values", len(raw))
	}

	total := len(raw) / writer.ValueSize
	if *start < 0 || *start >= total {
		log.Fatalf("Invalid start index: %d (store holds %d values)", *start, total)
	}

	end := total
	if *count > 0 && *start+*count < total {
		end = *start + *count
	}

	vals := utils.DecodeFloat64s(raw[*start*writer.ValueSize:], end-*start)
	for i, v := range vals {
		fmt.Printf("%8d  %g\n", *start+i, v)
	}
}
