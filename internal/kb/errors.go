package kb

import "fmt"

// LoadError reports a failure to read the knowledge corpus directory.
type LoadError struct {
	Dir   string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load knowledge base from %s: %v", e.Dir, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
