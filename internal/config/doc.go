// Package config provides the configuration for reflow.
//
// Configuration is resolved in three layers, higher layers overriding lower:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. REFLOW_* environment variables
//
// Command line flags are applied on top by the caller.
//
// # Configuration Files
//
//	# ~/.config/reflow/config.toml
//	[editor]
//	wrapWidth = 0       # 0 wraps at the panel width
//	fontSize = 75
//	measurer = "cells"  # cells, graphemes, font, monospace
//
//	[log]
//	level = "info"
//	file = "/tmp/reflow.log"
//
// # Sub-packages
//
//   - loader: file decoding and environment variables
//   - watcher: file watching for live reload
package config
