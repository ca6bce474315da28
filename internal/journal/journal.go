// Package journal records assertion failures and operator decisions in an
// append-only JSONL file. Each entry carries the hash of the previous line so
// edits, deletions and insertions are detectable with Verify.
package journal

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GenesisHash is the prev_hash for the first entry in a new journal.
const GenesisHash = "sha256:0000000000000000000000000000000000000000000000000000000000000000"

// TimestampFormat is the layout used in entry timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Log is an open journal file. Safe for concurrent use.
type Log struct {
	path     string
	session  string
	pid      int
	file     *os.File
	prevHash string
	mu       sync.Mutex
}

// Open opens (or creates) a journal for appending and starts a new session.
// If the file already exists, its last line becomes the chain tail.
func Open(path string) (*Log, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}

	prevHash := GenesisHash

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		tail, err := lastLine(path)
		if err != nil {
			return nil, err
		}
		if len(tail) > 0 {
			prevHash = HashLine(tail)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("journal: open file: %w", err)
	}

	return &Log{
		path:     path,
		session:  uuid.NewString(),
		pid:      os.Getpid(),
		file:     file,
		prevHash: prevHash,
	}, nil
}

// Entries are read back line by line. Messages are capped on write at
// maxMessageSize, well under the read limit.
const (
	maxMessageSize = 1 << 20
	maxLineSize    = 16 << 20
)

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

func lastLine(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("journal: read existing file: %w", err)
	}
	defer f.Close()

	scanner := newScanner(f)
	var last []byte
	for scanner.Scan() {
		last = append(last[:0], scanner.Bytes()...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("journal: scan existing file: %w", err)
	}
	return last, nil
}

// Path returns the journal file path.
func (l *Log) Path() string {
	return l.path
}

// Session returns the id stamped on entries written by this Log.
func (l *Log) Session() string {
	return l.session
}

// Record appends entry with hash chaining and syncs to disk. Timestamp,
// Session and PID are filled in when empty.
func (l *Log) Record(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}
	if entry.Session == "" {
		entry.Session = l.session
	}
	if entry.PID == 0 {
		entry.PID = l.pid
	}
	if len(entry.Message) > maxMessageSize {
		entry.Message = entry.Message[:maxMessageSize] + "...(truncated)"
	}
	entry.PrevHash = l.prevHash

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("journal: marshal entry: %w", err)
	}

	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("journal: write entry: %w", err)
	}
	// Sync before the trap fires: the process may be killed while halted.
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("journal: sync: %w", err)
	}

	l.prevHash = HashLine(line)
	return nil
}

// Close closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// HashLine returns "sha256:<hex>" of the given bytes.
func HashLine(line []byte) string {
	h := sha256.Sum256(line)
	return "sha256:" + hex.EncodeToString(h[:])
}
