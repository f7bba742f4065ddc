// Package data embeds the bundled match scenarios.
package data

import (
	"embed"
	"io/fs"
)

//go:embed scenarios/*.yaml
var scenarioFS embed.FS

// FS returns the bundled scenarios, rooted at the scenarios directory.
func FS() fs.FS {
	sub, err := fs.Sub(scenarioFS, "scenarios")
	if err != nil {
		panic(err)
	}
	return sub
}

// Scenarios lists the bundled scenario file names.
func Scenarios() []string {
	entries, err := fs.ReadDir(FS(), ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
