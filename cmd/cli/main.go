package main

import "github.com/driftindex/adictl/pkg/cli"

func main() {
	cli.Execute()
}
