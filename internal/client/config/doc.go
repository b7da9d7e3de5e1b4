// Package config loads runtime configuration for the draftkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://grants.example",
//	  "draft_kind": "report",
//	  "draft_id": 42,
//	  "submit_id": 7,
//	  "interval": "60s",
//	  "file_fields": ["photo1", "photo_release"]
//	}
//
// Primary API
//
//   - type Config                     - draft identity, server, timing and storage settings
//   - func LoadConfig() *Config       - builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   - sets sensible defaults
//   - func (*Config) Validate() error - rejects settings the client cannot run with
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
