package main

import "carbon-dropins/internal/cli"

func main() {
	cli.Execute()
}
