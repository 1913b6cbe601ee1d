// Package cli constructs the taskops command-line interface, wiring the Cobra
// command hierarchy, configuration loader, and structured logging for the
// broadcast and dataset audit tools.
package cli
