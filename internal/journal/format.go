package journal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const separator = "──────────────────────────────────────────────────────────────────"

// FormatTimeline renders a ReplayResult as a human-readable timeline.
func FormatTimeline(result *ReplayResult) string {
	if len(result.Entries) == 0 {
		return "No journal entries found.\n"
	}

	var b strings.Builder

	first := formatDateTime(result.Summary.FirstTimestamp)
	last := formatTimeOnly(result.Summary.LastTimestamp)
	fmt.Fprintf(&b, "Journal: %d session(s) | %s–%s UTC\n", result.Summary.Sessions, first, last)
	b.WriteString(separator + "\n")

	for _, e := range result.Entries {
		detail := e.Condition
		if e.Event == EventResolved {
			detail = "outcome=" + e.Outcome
		}
		fmt.Fprintf(&b, "%-10s %-8s %-9s %-36s %s\n",
			formatTimeOnly(e.Timestamp),
			shortSession(e.Session),
			strings.ToUpper(e.Event),
			truncateLeft(e.Site, 36),
			truncate(detail, 48))
	}

	b.WriteString(separator + "\n")
	b.WriteString(formatSummary(result.Summary))
	return b.String()
}

// FormatJSON renders a ReplayResult as indented JSON.
func FormatJSON(result *ReplayResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal replay result: %w", err)
	}
	return string(data), nil
}

func formatDateTime(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimeOnly(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func formatSummary(s ReplaySummary) string {
	parts := []string{fmt.Sprintf("%d failure(s) at %d site(s)", s.Failures, s.Sites)}
	if s.Ignored > 0 {
		parts = append(parts, fmt.Sprintf("%d ignored", s.Ignored))
	}
	if s.Disabled > 0 {
		parts = append(parts, fmt.Sprintf("%d disabled", s.Disabled))
	}
	if s.Unleashed > 0 {
		parts = append(parts, fmt.Sprintf("%d unleashed", s.Unleashed))
	}
	if s.Aborted > 0 {
		parts = append(parts, fmt.Sprintf("%d aborted", s.Aborted))
	}
	return strings.Join(parts, " | ") + "\n"
}

func shortSession(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// truncateLeft keeps the end of s, which for file:line keys is the useful part.
func truncateLeft(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
