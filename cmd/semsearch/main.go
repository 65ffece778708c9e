package main

import "github.com/viant/semsearch/internal/cli"

func main() {
	cli.Execute()
}
