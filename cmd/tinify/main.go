package main

import "github.com/shestakovda/tinify/internal/cli"

func main() {
	cli.Execute()
}
