package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites leading tilde shortcuts in dataset, report, and
// configuration paths to absolute locations under the user's home directory.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	resolved              bool
	resolutionGuard       sync.Once
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(nil)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom home directory lookup.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand trims the candidate and resolves "~" and "~/" prefixes. Paths such as
// "~user/data" are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if expander == nil || !strings.HasPrefix(trimmedPath, tildeSymbolConstant) {
		return trimmedPath
	}

	homeDirectory, available := expander.home()
	if !available {
		return trimmedPath
	}

	switch {
	case trimmedPath == tildeSymbolConstant:
		return homeDirectory
	case strings.HasPrefix(trimmedPath, tildeForwardSlashPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(trimmedPath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(trimmedPath, tildeSymbolConstant+string(os.PathSeparator)):
		return filepath.Join(homeDirectory, strings.TrimPrefix(trimmedPath, tildeSymbolConstant+string(os.PathSeparator)))
	default:
		return trimmedPath
	}
}

// ExpandAll expands every candidate and drops the ones left empty after trimming.
func (expander *HomeExpander) ExpandAll(candidatePaths []string) []string {
	expandedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		expandedPath := expander.Expand(candidatePath)
		if len(expandedPath) == 0 {
			continue
		}
		expandedPaths = append(expandedPaths, expandedPath)
	}
	return expandedPaths
}

func (expander *HomeExpander) home() (string, bool) {
	expander.resolutionGuard.Do(func() {
		homeDirectory, lookupError := expander.homeDirectoryProvider()
		if lookupError != nil || len(homeDirectory) == 0 {
			return
		}
		expander.homeDirectory = homeDirectory
		expander.resolved = true
	})
	return expander.homeDirectory, expander.resolved
}
