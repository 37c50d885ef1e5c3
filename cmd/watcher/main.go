package main

import "launchwatch/internal/cli"

func main() {
	cli.Execute()
}
