package main

import (
	"fmt"
	"log"

	"github.com/theflywheel/chainhash"
	"github.com/theflywheel/chainhash/harness"
)

func main() {
	// Ten buckets for twelve words forces some chains to grow
	table, err := chainhash.New(10)
	if err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}

	words := []string{
		"apple", "banana", "cherry", "date", "elderberry", "fig",
		"grape", "honeydew", "kiwi", "lemon", "mango", "banana",
	}
	table.InsertAll(words...)

	fmt.Printf("Inserted %d words into %d buckets (load factor %.2f)\n",
		table.Len(), table.Size(), table.LoadFactor())

	for i := 0; i < table.Size(); i++ {
		fmt.Printf("Bucket %d: %v\n", i, table.Chain(i))
	}

	for _, w := range []string{"banana", "mango", "nectarine"} {
		probes := table.Search(w)
		if probes == chainhash.NotFound {
			fmt.Printf("%s not found\n", w)
			continue
		}
		fmt.Printf("%s found after %d probes\n", w, probes)
	}

	h := harness.New(table, harness.WithSeed(1))

	single, err := h.SingleSearch(words)
	if err != nil {
		log.Fatalf("Single search failed: %v", err)
	}
	fmt.Println(single)

	batch, err := h.BatchSearch(words, 25)
	if err != nil {
		log.Fatalf("Batch search failed: %v", err)
	}
	fmt.Println(batch)

	fmt.Println("Example completed successfully")
}
