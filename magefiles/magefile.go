// SPDX-License-Identifier: Unlicense OR MIT

//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Check mg.Namespace

// Test runs the unit tests of every package.
func (Check) Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on every package.
func (Check) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// All runs vet and the unit tests.
func (Check) All() {
	mg.SerialDeps(Check{}.Vet, Check{}.Test)
}

type Trace mg.Namespace

// Scripts runs every fugutrace test script and prints the vertex layouts
// and GL calls.
func (Trace) Scripts() error {
	scripts, err := filepath.Glob(filepath.Join("cmd", "fugutrace", "testdata", "*.toml"))
	if err != nil {
		return err
	}
	for _, s := range scripts {
		if err := sh.RunV("go", "run", "./cmd/fugutrace", "-layout", s); err != nil {
			return err
		}
	}
	return nil
}

type Run mg.Namespace

// Triangle opens the triangle example window.
func (Run) Triangle() error {
	return sh.RunV("go", "run", "./example/triangle")
}

// Texquad opens the textured quad example window.
func (Run) Texquad() error {
	return sh.RunV("go", "run", "./example/texquad")
}
