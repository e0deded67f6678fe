package main

import "layered-views/internal/cli"

func main() {
	cli.Execute()
}
