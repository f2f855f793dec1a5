// Package main is the entry point for the cloneforge CLI.
package main

import "cloneforge.dev/pkg/cloneforge/cmd"

func main() {
	cmd.Execute()
}
