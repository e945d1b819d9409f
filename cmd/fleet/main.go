package main

import "github.com/andrescamacho/spacetraders-fleet/internal/adapters/cli"

func main() {
	cli.Execute()
}
