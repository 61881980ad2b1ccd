// Legible - text contrast checks for captured user interfaces
//
// Legible reads a snapshot of a UI element tree and reports text whose
// contrast against its background falls below the WCAG thresholds.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/legible/internal/cli"

func main() {
	cli.Execute()
}
