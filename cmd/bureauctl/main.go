package main

import "bureau/internal/cli"

func main() {
	cli.Execute()
}
