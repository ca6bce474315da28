package protocol

import (
	"fmt"
	"strings"
)

// Outcome is what the debugger operator decided while the trap was halted.
// A fresh zero Outcome is created for every trap; the operator writes its
// fields from the debugger before continuing.
type Outcome struct {
	Ignore  bool `json:"ignore,omitempty"`  // ignore this failure this time
	Disable bool `json:"disable,omitempty"` // disable this assert permanently
	Unleash bool `json:"unleash,omitempty"` // disable all asserts permanently
}

// Decided reports whether any field was set.
func (o Outcome) Decided() bool {
	return o.Ignore || o.Disable || o.Unleash
}

func (o Outcome) String() string {
	var parts []string
	if o.Ignore {
		parts = append(parts, "ignore")
	}
	if o.Disable {
		parts = append(parts, "disable")
	}
	if o.Unleash {
		parts = append(parts, "unleash")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Variant selects how the protocol treats a trap the operator continued
// without deciding anything. It is fixed per Protocol.
type Variant int

const (
	// Retry traps again until the operator sets one of the outcome fields.
	Retry Variant = iota
	// SingleShot traps once per failure; continuing without a decision
	// ignores that failure. There is no Ignore field in its instructions.
	SingleShot
)

func (v Variant) String() string {
	switch v {
	case Retry:
		return "retry"
	case SingleShot:
		return "single"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant parses "retry" or "single" (also "single-shot").
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "retry":
		return Retry, nil
	case "single", "single-shot", "singleshot":
		return SingleShot, nil
	}
	return Retry, fmt.Errorf("unknown protocol variant %q (want retry or single)", s)
}
