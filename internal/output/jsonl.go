package output

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"github.com/selimozcann/SiteHunter/internal/model"
)

// Record represents one line in the JSONL report.
type Record struct {
	RunID     string `json:"run_id,omitempty"`
	Target    string `json:"target"`
	Timestamp string `json:"timestamp"`
	model.Finding
}

// BuildRecords tags every finding with the run it came from.
func BuildRecords(runID, target string, at time.Time, findings []model.Finding) []Record {
	ts := at.UTC().Format(time.RFC3339)
	out := make([]Record, len(findings))
	for i, f := range findings {
		out[i] = Record{RunID: runID, Target: target, Timestamp: ts, Finding: f}
	}
	return out
}

// WriteJSONL writes each record as a JSON line to w.
func WriteJSONL(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteJSONLFile writes records to path.
func WriteJSONLFile(path string, records []Record) error {
	return writeAtomic(path, func(w io.Writer) error { return WriteJSONL(w, records) })
}
