package main

import (
	"path/filepath"
	"strings"
)

// dirOf returns the directory holding the sqlite file, or "." for in-memory
// and bare-filename paths.
func dirOf(dbPath string) string {
	if dbPath == "" || strings.HasPrefix(dbPath, ":memory:") || strings.HasPrefix(dbPath, "file:") {
		return "."
	}
	return filepath.Dir(dbPath)
}
