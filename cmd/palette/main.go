// Package main provides the offline palette command line tool.
package main

import "github.com/centipy/palette-server/internal/cli"

func main() {
	cli.Execute()
}
