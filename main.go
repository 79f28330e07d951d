package main

import (
	"github.com/Vikakfuse/star-craft/cli"
)

func main() {
	cli.NewRootCommand().Execute()
}
