//go:build !linux && !darwin

package probe

// No tracer query is implemented here; failures always take the hard-stop path.
func attached() bool {
	return false
}
