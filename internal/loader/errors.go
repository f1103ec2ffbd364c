package loader

import "fmt"

// LoadError is returned when no candidate produced a plausible table, or
// when the input file could not be read at all.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot load %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("cannot load %s with any encoding/delimiter combination", e.File)
}

func (e *LoadError) Unwrap() error { return e.Err }
