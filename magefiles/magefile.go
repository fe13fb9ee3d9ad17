//go:build mage

// Package main contains Mage build targets for content-engine developer
// tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	"projects",
	".secrets",
}

// Init creates the working directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Working directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "content-engine"
	cmdPkg  = "./cmd/content-engine"
)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := fmt.Sprintf("-X main.version=%s", version)
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite with race detection.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet across the module.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs lint and tests.
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm(binDir)
}
