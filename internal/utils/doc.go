// Package utils holds the ambient plumbing shared by every taskops command.
//
// ConfigurationLoader merges the embedded defaults, an optional configuration
// file, and TASKOPS_ environment overrides through Viper. LoggerFactory builds
// zap loggers in the structured (JSON) or console encodings.
package utils
