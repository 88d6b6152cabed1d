package main

import (
	"path/filepath"
	"strings"
)

// csvFallbackPath derives the CSV fallback from the JSON directory path, so
// "data/recipients.json" falls back to "data/recipients.csv".
func csvFallbackPath(jsonPath string) string {
	ext := filepath.Ext(jsonPath)
	return strings.TrimSuffix(jsonPath, ext) + ".csv"
}

// sessionDir is where the file store keeps snapshots, alongside the letters.
func sessionDir(outputDir string) string {
	return filepath.Join(outputDir, "sessions")
}
