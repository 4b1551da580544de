package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateExclusionList writes a sample excluded-orders file for local
// development. Each line is one order number; lines starting with '#'
// are comments.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	path := filepath.Join(dataDir, "excluded_orders.txt")
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "# Orders placed by the store owner for checkout testing.")
	fmt.Fprintln(f, "# One order number per line.")
	for _, n := range []int64{10001, 10376} {
		fmt.Fprintln(f, n)
	}

	fmt.Printf("Wrote sample exclusion list to %s\n", path)
}
