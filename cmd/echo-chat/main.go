package main

import "echo-widget/internal/cli"

func main() {
	cli.Execute()
}
