// Package config loads and caches content packs from disk.
//
// Manager scans a packs directory for JSON files, validates each pack on
// load, and caches parsed packs for the life of the process. Packs are
// identified by filename without the .json extension; "classic" is the
// preferred default, falling back to the built-in pack when the directory
// has nothing usable.
package config
