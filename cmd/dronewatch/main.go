package main

import "github.com/andrescamacho/dronewatch-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
