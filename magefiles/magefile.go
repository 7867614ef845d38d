//go:build mage

// Package main contains Mage build targets for citation-lens developer tooling.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// All lints, tests, and builds, in that order.
func All() {
	mg.SerialDeps(Lint, Test, Build)
}

const (
	binDir  = "bin"
	binName = "citation-lens"
	cmdPkg  = "./cmd/citation-lens"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := run("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite.
func Test() error {
	return run("go", "test", "./...")
}

// Lint runs go vet across the module.
func Lint() error {
	return run("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binDir)
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
