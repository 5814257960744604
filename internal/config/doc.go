// Package config provides the configuration system for the indenter.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← INDENTER_INDENT_WIDTH, ...
//	├─────────────────────────────┤
//	│  2. Configuration File      │  ← indenter.toml or indenter.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: Configuration file loading (TOML, YAML, environment variables)
//   - watcher: Reloads the configuration when its file changes
//
// # Settings
//
//	indent.width              spaces per indent level (default 2)
//	indent.autoCloseComments  close block comments on Enter (default false)
//	indent.tabs               emit tabs for whole indent levels (default false)
//	log.level                 debug, info, warn or error (default info)
//	log.format                text or json (default text)
//
// A loaded *Config satisfies indent.Settings.
package config
