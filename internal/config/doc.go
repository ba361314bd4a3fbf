// Package config loads, normalizes, and validates filesort configuration data.
//
// It supplies repository defaults (including the built-in extension table),
// reads TOML files from the --config flag, ~/.config/filesort/config.toml or
// ./filesort.toml, normalizes category names and extensions, and reports
// validation errors before any file is touched.
package config
