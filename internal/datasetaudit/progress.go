package datasetaudit

import (
	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"
)

// ProgressTracker drives step once per index in [0, total) and stops at the
// first error.
type ProgressTracker interface {
	Track(total int, description string, step func(index int) error) error
}

// SilentProgress iterates without rendering anything.
type SilentProgress struct{}

// Track runs every step in order.
func (SilentProgress) Track(total int, description string, step func(index int) error) error {
	for index := 0; index < total; index++ {
		if stepError := step(index); stepError != nil {
			return stepError
		}
	}
	return nil
}

// TerminalProgress renders a tqdm progress bar on stderr.
type TerminalProgress struct{}

// Track runs every step in order while updating the progress bar.
func (TerminalProgress) Track(total int, description string, step func(index int) error) error {
	var stepError error
	iterationError := tqdm.With(iterators.Interval(0, total), description, func(value interface{}) (brk bool) {
		stepError = step(value.(int))
		return stepError != nil
	})
	if stepError != nil {
		return stepError
	}
	return iterationError
}
