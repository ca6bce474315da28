package journal

// Event names recorded in the journal.
const (
	EventFailure  = "failure"
	EventPrompted = "prompted"
	EventResolved = "resolved"
	EventAborted  = "aborted"
)

// Entry is one line in the hash-chained JSONL journal.
// Fields are plain values (no maps) so json.Marshal output, and therefore
// the chain hash, is deterministic.
type Entry struct {
	Timestamp string `json:"ts"`
	Session   string `json:"session"`
	PID       int    `json:"pid"`
	Event     string `json:"event"`
	Site      string `json:"site"`
	Function  string `json:"function,omitempty"`
	Condition string `json:"condition,omitempty"`
	Message   string `json:"message,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	PrevHash  string `json:"prev_hash"`
}
