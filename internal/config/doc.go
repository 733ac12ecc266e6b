// Package config loads flashdeck's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/flashdeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	api_base = "http://localhost:8000/api/v1"
//	health_timeout = "10s"
//	upload_timeout = "2m"
//	log_file = "~/.local/state/flashdeck/flashdeck.log"
//
// All fields are optional. Durations use time.ParseDuration syntax and tilde
// expansion is applied to log_file.
//
// # Validation
//
// After merging, the config is checked with go-playground/validator. api_base
// must be an http or https URL and both timeouts must be positive. Every
// failing field is reported in a single error using its TOML key.
package config
