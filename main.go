// Package main is the entry point for the labgrade CLI.
package main

import "labgrade.dev/pkg/labgrade/cmd"

func main() {
	cmd.Execute()
}
