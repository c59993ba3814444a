// Package main is the entry point for the gofold CLI.
package main

import "gofold.dev/pkg/gofold/cmd"

func main() {
	cmd.Execute()
}
