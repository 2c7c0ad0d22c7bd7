// Package config loads and validates the romuless TOML configuration.
//
// Defaults cover every field, so running without a config file works; Load
// layers an optional file over Default, expands ~ in path fields, and
// validates the result. Keep normalization here so core packages only ever
// see absolute, cleaned paths.
package config
