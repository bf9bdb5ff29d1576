package db

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type rawSnapshot struct {
	Statistics *Statistics             `json:"statistics"`
	Requests   map[string]*Submission `json:"requests"`
}

func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("encodeSnapshot: %w", err)
	}

	return buf.Bytes(), nil
}

// decodeSnapshot fills in a missing statistics or requests section and
// reports whether it had to.
func decodeSnapshot(data []byte) (*Snapshot, bool, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("decodeSnapshot: %w", err)
	}

	snap := NewSnapshot()
	repaired := false

	if raw.Statistics != nil {
		snap.Statistics = *raw.Statistics
	} else {
		repaired = true
	}

	if raw.Requests != nil {
		for id, sub := range raw.Requests {
			if sub == nil {
				repaired = true
				continue
			}
			snap.Requests[id] = sub
		}
	} else {
		repaired = true
	}

	return snap, repaired, nil
}
