package dataset

import (
	"strings"

	"github.com/spf13/viper"

	pathutils "github.com/dynamic-superb/taskops/internal/utils/path"
)

const (
	descriptorConfigurationTypeConstant   = "json"
	descriptorPathKeyConstant             = "path"
	descriptorVersionKeyConstant          = "version"
	descriptorNameKeyConstant             = "name"
	descriptorKeyMissingMessageConstant   = "is required"
	descriptorKeyNotStringMessageConstant = "must be a string"
	descriptorKeyEmptyMessageConstant     = "must not be empty"
	descriptorReadOperationConstant       = "read descriptor"
	descriptorDecodeOperationConstant     = "decode descriptor"
)

// Descriptor identifies which dataset to load and how to title its report.
// Version is the requested revision; empty accepts whatever is on disk.
type Descriptor struct {
	Path    string `mapstructure:"path"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// LoadDescriptor reads a JSON descriptor file carrying "path", "version" and
// "name" string keys. Additional keys are ignored.
func LoadDescriptor(descriptorPath string) (Descriptor, error) {
	resolvedPath := pathutils.NewHomeExpander().Expand(descriptorPath)

	viperInstance := viper.New()
	viperInstance.SetConfigFile(resolvedPath)
	viperInstance.SetConfigType(descriptorConfigurationTypeConstant)
	if readError := viperInstance.ReadInConfig(); readError != nil {
		return Descriptor{}, OperationError{Operation: descriptorReadOperationConstant, Path: resolvedPath, Cause: readError}
	}

	for _, requiredKey := range []string{descriptorPathKeyConstant, descriptorVersionKeyConstant, descriptorNameKeyConstant} {
		if !viperInstance.InConfig(requiredKey) {
			return Descriptor{}, InvalidDescriptorError{Key: requiredKey, Message: descriptorKeyMissingMessageConstant}
		}
		if _, isString := viperInstance.Get(requiredKey).(string); !isString {
			return Descriptor{}, InvalidDescriptorError{Key: requiredKey, Message: descriptorKeyNotStringMessageConstant}
		}
	}

	descriptor := Descriptor{}
	if decodeError := viperInstance.Unmarshal(&descriptor); decodeError != nil {
		return Descriptor{}, OperationError{Operation: descriptorDecodeOperationConstant, Path: resolvedPath, Cause: decodeError}
	}

	return descriptor.sanitize()
}

func (descriptor Descriptor) sanitize() (Descriptor, error) {
	sanitized := Descriptor{
		Path:    strings.TrimSpace(descriptor.Path),
		Version: strings.TrimSpace(descriptor.Version),
		Name:    strings.TrimSpace(descriptor.Name),
	}
	if len(sanitized.Path) == 0 {
		return Descriptor{}, InvalidDescriptorError{Key: descriptorPathKeyConstant, Message: descriptorKeyEmptyMessageConstant}
	}
	if len(sanitized.Name) == 0 {
		return Descriptor{}, InvalidDescriptorError{Key: descriptorNameKeyConstant, Message: descriptorKeyEmptyMessageConstant}
	}
	return sanitized, nil
}
