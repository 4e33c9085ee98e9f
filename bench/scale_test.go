// Package chainhash_test measures insert and search cost of the chained table
// at increasing scale and load factor.
//
// Scale benchmarks run once each and record into benchmark_history/latest.json:
//   - Insertion rate, with progress reporting
//   - Random search rate and average probes per search
//   - Chain distribution (empty buckets, longest chain)
package chainhash_test

import (
	"fmt"
	"math/rand"
	"runtime"
	"testing"
	"time"

	"github.com/theflywheel/chainhash"
)

// BenchmarkTenThousandKeys loads 10K words into 1K buckets (load factor 10)
func BenchmarkTenThousandKeys(b *testing.B) {
	runScale(b, "TenThousandKeys", 10_000, 1_000, 1_000)
}

// BenchmarkMillionKeys loads 1M words into 100K buckets (load factor 10)
func BenchmarkMillionKeys(b *testing.B) {
	runScale(b, "MillionKeys", 1_000_000, 100_000, 100_000)
}

func runScale(b *testing.B, name string, numKeys, tableSize, progressInterval int) {
	// Scale runs are single-shot regardless of -benchtime
	b.N = 1
	b.StopTimer()

	r := rand.New(rand.NewSource(1))
	words := randomWords(r, numKeys, 3, 12)

	table, err := chainhash.New(tableSize)
	if err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}

	metrics := BenchmarkMetrics{
		Name:       name,
		Category:   "scale",
		Operations: numKeys,
		Metrics:    make(map[string]float64),
	}

	runtime.GC()
	b.Logf("Inserting %d keys into %d buckets...", numKeys, tableSize)

	b.StartTimer()
	insertStart := time.Now()
	for i, w := range words {
		table.Insert(w)

		if (i+1)%progressInterval == 0 {
			b.StopTimer()
			rate := float64(i+1) / time.Since(insertStart).Seconds()
			b.Logf("Inserted %d keys... (%.2f keys/sec)", i+1, rate)
			metrics.Metrics[fmt.Sprintf("insert_rate_%d", i+1)] = rate
			metrics.Metrics[fmt.Sprintf("memory_mb_%d", i+1)] = allocMB()
			b.StartTimer()
		}
	}
	b.StopTimer()
	insertTime := time.Since(insertStart)
	metrics.Metrics["insertion_rate"] = float64(numKeys) / insertTime.Seconds()

	searches := numKeys / 10
	totalProbes := 0
	b.StartTimer()
	searchStart := time.Now()
	for i := 0; i < searches; i++ {
		probes := table.Search(words[r.Intn(numKeys)])
		if probes == chainhash.NotFound {
			b.Fatalf("Inserted key not found on search %d", i)
		}
		totalProbes += probes
	}
	b.StopTimer()
	searchTime := time.Since(searchStart)

	stats := table.Stats()
	b.Logf("Searched %d random keys in %v (%.2f probes/search)",
		searches, searchTime, float64(totalProbes)/float64(searches))
	b.Logf("Buckets: %d empty, longest chain %d, load factor %.2f",
		stats.EmptyBuckets, stats.LongestChain, stats.LoadFactor)

	metrics.Metrics["search_rate"] = float64(searches) / searchTime.Seconds()
	metrics.Metrics["avg_probes"] = float64(totalProbes) / float64(searches)
	metrics.Metrics["empty_buckets"] = float64(stats.EmptyBuckets)
	metrics.Metrics["longest_chain"] = float64(stats.LongestChain)
	metrics.Metrics["alloc_mb"] = allocMB()
	metrics.NsPerOp = float64(insertTime.Nanoseconds()+searchTime.Nanoseconds()) / float64(numKeys+searches)

	if err := saveBenchmarkResult(metrics, "latest.json"); err != nil {
		b.Logf("Failed to save benchmark result: %v", err)
	}
}
