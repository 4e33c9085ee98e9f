package chainhash_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// BenchmarkMetrics is one benchmark's entry in the results history
type BenchmarkMetrics struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// BenchmarkSummary is the file written to benchmark_history/
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

func allocMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / (1024 * 1024)
}

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomWords returns n word-like keys between minLen and maxLen characters
func randomWords(r *rand.Rand, n, minLen, maxLen int) []string {
	words := make([]string, n)
	buf := make([]byte, maxLen)
	for i := range words {
		l := minLen + r.Intn(maxLen-minLen+1)
		for j := 0; j < l; j++ {
			buf[j] = alphanumeric[r.Intn(len(alphanumeric))]
		}
		words[i] = string(buf[:l])
	}
	return words
}

// gitInfo reads the current branch and short commit from repoRoot/.git
func gitInfo(repoRoot string) (branch, commit string) {
	branch, commit = "dev", "local"

	head, err := os.ReadFile(filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return branch, commit
	}

	ref := strings.TrimSpace(string(head))
	if !strings.HasPrefix(ref, "ref: ") {
		if len(ref) >= 8 {
			commit = ref[:8]
		}
		return branch, commit
	}

	ref = strings.TrimPrefix(ref, "ref: ")
	branch = strings.TrimPrefix(ref, "refs/heads/")
	if data, err := os.ReadFile(filepath.Join(repoRoot, ".git", ref)); err == nil {
		commit = strings.TrimSpace(string(data))
		if len(commit) >= 8 {
			commit = commit[:8]
		}
	}
	return branch, commit
}

// dropProgressMetrics removes per-step metrics like insert_rate_* or memory_mb_*
func dropProgressMetrics(metrics *BenchmarkMetrics) {
	for key := range metrics.Metrics {
		if strings.HasPrefix(key, "insert_rate_") || strings.HasPrefix(key, "memory_mb_") {
			delete(metrics.Metrics, key)
		}
	}
}

// saveBenchmarkResult appends metrics to benchmark_history/<resultsFile> at the repository root
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	dropProgressMetrics(&metrics)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	repoRoot := filepath.Dir(cwd)

	historyDir := filepath.Join(repoRoot, "benchmark_history")
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	branch, commit := gitInfo(repoRoot)
	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commit,
		Branch:    branch,
		GoVersion: runtime.Version(),
	}

	path := filepath.Join(historyDir, resultsFile)
	if existing, err := os.ReadFile(path); err == nil {
		var previous BenchmarkSummary
		if json.Unmarshal(existing, &previous) == nil {
			summary.Results = previous.Results
		}
	}
	summary.Results = append(summary.Results, metrics)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	fmt.Printf("Benchmark results saved to: %s\n", path)
	return nil
}
