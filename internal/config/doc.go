// Package config loads and merges githuntr configuration.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Config file ($XDG_CONFIG_HOME/githuntr/config.json)
//  3. Built-in defaults
//
// The config file holds scan defaults (patterns, worker count, output
// format); the repository URL and output path are per-invocation only.
// Pattern validation happens here via [Config.Compile], before any scanning
// starts.
package config
