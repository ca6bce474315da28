package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// ReplayFilter selects journal entries. Zero values match everything.
type ReplayFilter struct {
	Session string
	Site    string
	From    time.Time
	To      time.Time
}

// ReplaySummary counts what happened in the selected entries.
type ReplaySummary struct {
	Total          int    `json:"total"`
	Failures       int    `json:"failures"`
	Prompts        int    `json:"prompts"`
	Ignored        int    `json:"ignored"`
	Disabled       int    `json:"disabled"`
	Unleashed      int    `json:"unleashed"`
	Aborted        int    `json:"aborted"`
	Sites          int    `json:"sites"`
	Sessions       int    `json:"sessions"`
	FirstTimestamp string `json:"first_timestamp"`
	LastTimestamp  string `json:"last_timestamp"`
}

// ReplayResult holds filtered entries and their summary.
type ReplayResult struct {
	Filter  ReplayFilter  `json:"-"`
	Entries []Entry       `json:"entries"`
	Summary ReplaySummary `json:"summary"`
}

// Replay reads the journal and returns entries matching the filter.
// Malformed lines are skipped.
func Replay(path string, filter ReplayFilter) (*ReplayResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	result := &ReplayResult{Filter: filter}
	sites := make(map[string]bool)
	sessions := make(map[string]bool)

	scanner := newScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if !filter.match(entry) {
			continue
		}

		result.Entries = append(result.Entries, entry)
		updateSummary(&result.Summary, entry)
		sites[entry.Site] = true
		sessions[entry.Session] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	result.Summary.Sites = len(sites)
	result.Summary.Sessions = len(sessions)
	return result, nil
}

func (f ReplayFilter) match(e Entry) bool {
	if f.Session != "" && e.Session != f.Session {
		return false
	}
	if f.Site != "" && e.Site != f.Site && !strings.HasSuffix(e.Site, "/"+f.Site) {
		return false
	}
	if f.From.IsZero() && f.To.IsZero() {
		return true
	}

	ts, err := time.Parse(TimestampFormat, e.Timestamp)
	if err != nil {
		return false
	}
	if !f.From.IsZero() && ts.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && ts.After(f.To) {
		return false
	}
	return true
}

func updateSummary(s *ReplaySummary, e Entry) {
	s.Total++

	switch e.Event {
	case EventFailure:
		s.Failures++
	case EventPrompted:
		s.Prompts++
	case EventAborted:
		s.Aborted++
	case EventResolved:
		if strings.Contains(e.Outcome, "ignore") {
			s.Ignored++
		}
		if strings.Contains(e.Outcome, "disable") {
			s.Disabled++
		}
		if strings.Contains(e.Outcome, "unleash") {
			s.Unleashed++
		}
	}

	if s.FirstTimestamp == "" {
		s.FirstTimestamp = e.Timestamp
	}
	s.LastTimestamp = e.Timestamp
}
