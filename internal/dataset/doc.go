// Package dataset loads labeled audio/text datasets from disk.
//
// A dataset directory carries a dataset_info.yaml file declaring the ordered
// feature table and one JSON Lines file per split. Audio fields either embed
// their sample array or reference a WAV file relative to the dataset root.
// DirectoryLoader implements Loader for that layout; the audit command treats
// any Loader as an opaque source of a Dataset.
package dataset
