// Package catalog manages the preset probe targets the demo offers.
//
// A Manager keeps targets in memory and write-through persists API-created
// ones as JSON files. A Seeder populates the manager at boot from a
// directory of JSON, YAML, and TOML files plus a small built-in set, so a
// fresh checkout has something to probe against immediately. Invalid seed
// files are logged and skipped, never fatal.
package catalog
