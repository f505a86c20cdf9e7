package main

import "github.com/pfrederiksen/edison-soccer/internal/cli"

func main() {
	cli.Execute()
}
