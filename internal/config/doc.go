// Package config loads editor options from TOML or YAML files.
//
// A file holds flat option keys, optionally nested under an [editor]
// table. Keys may be written in camel, kebab or snake case:
//
//	tab-size = 2
//	use-soft-tabs = false
//	merge-undo-deltas = "always"
//
//	[app]
//	log-level = "debug"
//	mode = "c"
//	theme = "monokai"
//
// Options.Map returns the editor keys in the form accepted by
// editor.SetOptions. A Watcher reloads a file when it changes on disk.
package config
