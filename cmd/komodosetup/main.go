package main

import "komodosetup/internal/cli"

func main() {
	cli.Execute()
}
