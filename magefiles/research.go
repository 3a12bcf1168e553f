//go:build mage

package main

import (
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Research builds the CLI and researches topic in standard mode.
func Research(topic string) error {
	mg.Deps(Build)
	return sh.RunV(binDir+"/"+binName, "research", strings.TrimSpace(topic))
}

// Doctor builds the CLI and reports the configured credentials.
func Doctor() error {
	mg.Deps(Build)
	return sh.RunV(binDir+"/"+binName, "doctor")
}
