package main

import "github.com/pfrederiksen/confgrab/internal/cli"

func main() {
	cli.Execute()
}
