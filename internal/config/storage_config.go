package config

// StorageConfig controls the optional parquet archive of scraped records.
// The JSON output file is always written; the archive additionally keeps one
// parquet file per run so later runs can be diffed against it.
type StorageConfig struct {
	Enabled          bool   `json:"enabled" yaml:"enabled"`
	ParquetBasePath  string `json:"parquet_base_path,omitempty" yaml:"parquet_base_path,omitempty"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,oneof=zstd gzip snappy"`
}

// NewDefaultStorageConfig creates default storage configuration.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Enabled:          false,
		ParquetBasePath:  DefaultParquetBasePath,
		CompressionCodec: DefaultCompressionCodec,
	}
}

// RunLogConfig controls the sqlite run-history log. The run log is what
// distinguishes "discovery found zero profiles" from "the run failed"; the
// JSON output is an empty array either way.
type RunLogConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// NewDefaultRunLogConfig creates default run log configuration.
func NewDefaultRunLogConfig() RunLogConfig {
	return RunLogConfig{
		Enabled: false,
		DBPath:  DefaultRunLogDBPath,
	}
}

// OutputConfig controls where the final JSON array is written. The array is
// always echoed to stdout as well.
type OutputConfig struct {
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// NewDefaultOutputConfig creates default output configuration.
func NewDefaultOutputConfig() OutputConfig {
	return OutputConfig{File: DefaultOutputFile}
}
