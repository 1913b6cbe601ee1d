// Package datasetaudit validates a labeled audio/text dataset against the
// task convention and writes a summary report.
//
// The audit is a strict pipeline: ValidateDataset checks the split layout and
// feature table, ResolveFieldGroup enumerates the numbered audio, text and
// label fields, an Accumulator makes one pass over the test split, and
// WriteReport renders the finished Statistics. CommandBuilder exposes the
// pipeline as the "dataset audit" Cobra command.
package datasetaudit
