package cli

import (
	"bytes"
	_ "embed"
)

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the shipped taskops defaults
// (logging plus the broadcast and dataset audit sections) and their format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(embeddedDefaultConfigurationContent), configurationTypeConstant
}
