package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Report collects the results of one measurement run
type Report struct {
	Single  *SearchResult
	Batches []BatchResult
}

// WriteText prints the report one result per line
func WriteText(w io.Writer, r Report) error {
	if r.Single != nil {
		if _, err := fmt.Fprintln(w, r.Single.String()); err != nil {
			return err
		}
	}
	for _, b := range r.Batches {
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable renders the report as aligned tables
func WriteTable(w io.Writer, r Report) error {
	if r.Single != nil {
		single := tablewriter.NewWriter(w)
		single.SetHeader([]string{"Word", "Time (ms)", "Probes"})
		single.Append([]string{r.Single.Key, formatMillis(r.Single.Millis()), strconv.Itoa(r.Single.Probes)})
		single.Render()
	}

	if len(r.Batches) == 0 {
		return nil
	}

	batches := tablewriter.NewWriter(w)
	batches.SetHeader([]string{"Searches", "Min (ms)", "Avg (ms)", "Max (ms)", "Total Probes", "Misses"})
	batches.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, b := range r.Batches {
		batches.Append([]string{
			strconv.Itoa(b.Count),
			formatMillis(b.MinMillis()),
			formatMillis(b.AvgMillis()),
			formatMillis(b.MaxMillis()),
			strconv.Itoa(b.TotalProbes),
			strconv.Itoa(b.Misses),
		})
	}
	batches.Render()
	return nil
}

type singleJSON struct {
	Word   string  `json:"word"`
	TimeMs float64 `json:"time_ms"`
	Probes int     `json:"probes"`
}

type batchJSON struct {
	Searches    int     `json:"searches"`
	MinTimeMs   float64 `json:"min_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	MaxTimeMs   float64 `json:"max_time_ms"`
	TotalProbes int     `json:"total_probes"`
	Misses      int     `json:"misses"`
}

type reportJSON struct {
	Single  *singleJSON `json:"single,omitempty"`
	Batches []batchJSON `json:"batches"`
}

// WriteJSON encodes the report with times in fractional milliseconds
func WriteJSON(w io.Writer, r Report) error {
	out := reportJSON{Batches: make([]batchJSON, 0, len(r.Batches))}
	if r.Single != nil {
		out.Single = &singleJSON{
			Word:   r.Single.Key,
			TimeMs: r.Single.Millis(),
			Probes: r.Single.Probes,
		}
	}
	for _, b := range r.Batches {
		out.Batches = append(out.Batches, batchJSON{
			Searches:    b.Count,
			MinTimeMs:   b.MinMillis(),
			AvgTimeMs:   b.AvgMillis(),
			MaxTimeMs:   b.MaxMillis(),
			TotalProbes: b.TotalProbes,
			Misses:      b.Misses,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func formatMillis(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 3, 64)
}
