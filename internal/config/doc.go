// Package config loads, normalizes, and validates recue's TOML
// configuration.
//
// Configuration is optional: when no file exists at the default location the
// built-in defaults apply. An explicitly passed path must exist. Paths in the
// file may use a leading "~" and are expanded to absolute form on load.
package config
