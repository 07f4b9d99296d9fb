//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Serve builds the binary and runs the HTTP API with the local config.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}

// Tags prints every tag currently stored.
func Tags() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "tags", "all")
}
