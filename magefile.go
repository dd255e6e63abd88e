//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "livetrans"

var Default = Build

// Build compiles the livetrans binary
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/livetrans")
}

// Test runs all tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs livetrans into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/livetrans")
}

// Clean removes the built binary
func Clean() error {
	return sh.Rm(binary)
}
