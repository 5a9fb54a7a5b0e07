package main

import "library_backend/internals/cli"

func main() {
	cli.Execute()
}
